package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/http/middleware"
	"ltobackend/internal/repositories"
	"ltobackend/internal/services"
)

func paymentService(c *gin.Context) services.PaymentService {
	reqID := middleware.GetRequestID(c)
	return services.PaymentService{
		Payments: repositories.PaymentRepository{},
		Violations: services.ViolationService{
			Drivers:    repositories.DriverRepository{},
			Officers:   repositories.OfficerRepository{},
			Violations: repositories.ViolationRepository{},
			RequestID:  reqID,
		},
		Drivers: repositories.DriverRepository{},
		Recorder: services.VerificationService{
			Drivers:   repositories.DriverRepository{},
			Audit:     repositories.AuditRepository{},
			RequestID: reqID,
		},
		RequestID: reqID,
	}
}

// POST /api/payments
func SubmitPayment(c *gin.Context) {
	var req services.SubmitPaymentInput
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := paymentService(c).Submit(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_id": id})
}

// GET /api/payments/:id/receipt
func GetPaymentReceipt(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	svc := services.DocsService{
		Violations: repositories.ViolationRepository{},
		Drivers:    repositories.DriverRepository{},
		Officers:   repositories.OfficerRepository{},
		Payments:   repositories.PaymentRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
