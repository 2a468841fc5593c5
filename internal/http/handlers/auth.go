package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/http/middleware"
	"ltobackend/internal/repositories"
	"ltobackend/internal/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{
		Drivers:   repositories.DriverRepository{},
		Officers:  repositories.OfficerRepository{},
		Admins:    repositories.AdminRepository{},
		JWTSecret: jwtSecret,
		RequestID: middleware.GetRequestID(c),
	}

	result, err := svc.Login(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterDriverInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.DriverService{
		Drivers:   repositories.DriverRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	id, err := svc.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "driver registered successfully",
		"driver_user_id": id,
	})
}
