package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/http/middleware"
	"ltobackend/internal/repositories"
	"ltobackend/internal/services"
)

func verificationService(c *gin.Context) services.VerificationService {
	return services.VerificationService{
		Drivers:   repositories.DriverRepository{},
		Audit:     repositories.AuditRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/admin/:id
func AdminGetDetails(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	admin, err := repositories.AdminRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"full_name":    admin.FullName,
		"position":     admin.Position,
		"phone_number": admin.PhoneNumber,
	})
}

// GET /api/admin/:id/audit-logs
func AdminGetAuditLogs(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	logs, err := verificationService(c).AuditLogs(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// PUT /api/admin/drivers/:id/verify
func AdminVerifyDriver(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := verificationService(c).SetDriverVerified(id, middleware.CallerID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver verified"})
}

type licenseExpiryRequest struct {
	LicenseExpiry string `json:"license_expiry"`
}

// PUT /api/admin/drivers/:id/license-expiry
func AdminUpdateLicenseExpiry(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req licenseExpiryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := verificationService(c).UpdateLicenseExpiry(id, middleware.CallerID(c), req.LicenseExpiry); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "license expiry updated"})
}

type completePaymentRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/payments/:id/complete
func AdminCompletePayment(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req completePaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := paymentService(c).Complete(id, req.Status, middleware.CallerID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment marked as completed"})
}

// GET /api/admin/drivers
func ListAllDrivers(c *gin.Context) {
	drivers, err := repositories.DriverRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GET /api/admin/payments
func ListAllPayments(c *gin.Context) {
	payments, err := paymentService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
