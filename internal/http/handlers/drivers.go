package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/http/middleware"
	"ltobackend/internal/repositories"
	"ltobackend/internal/services"
)

func driverService(c *gin.Context) services.DriverService {
	return services.DriverService{
		Drivers:    repositories.DriverRepository{},
		Violations: repositories.ViolationRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

// GET /api/drivers/:id
func GetDriverDetails(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	profile, err := driverService(c).Details(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/drivers/:id/penalties
func ListDriverPenalties(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	penalties, err := driverService(c).Penalties(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"penalties": penalties})
}

// GET /api/drivers/:id/payments
func ListDriverPayments(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	svc := services.PaymentService{
		Payments:  repositories.PaymentRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	payments, err := svc.HistoryByDriver(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

type verifyDriverRequest struct {
	FullName      string `json:"full_name"`
	LicenseNumber string `json:"license_number"`
}

// POST /api/drivers/verify
func VerifyDriverExists(c *gin.Context) {
	var req verifyDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.VerificationService{
		Drivers:   repositories.DriverRepository{},
		Audit:     repositories.AuditRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	exists, err := svc.DriverExists(req.FullName, req.LicenseNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
