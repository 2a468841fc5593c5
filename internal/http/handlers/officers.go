package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/repositories"
)

// GET /api/officers/:id
func GetOfficerDetails(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	officer, err := repositories.OfficerRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"full_name":    officer.FullName,
		"badge_id":     officer.BadgeID,
		"station":      officer.Station,
		"phone_number": officer.PhoneNumber,
	})
}
