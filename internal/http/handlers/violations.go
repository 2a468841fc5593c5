package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltobackend/internal/http/middleware"
	"ltobackend/internal/repositories"
	"ltobackend/internal/services"
	"ltobackend/internal/utils"
)

func violationService(c *gin.Context) services.ViolationService {
	return services.ViolationService{
		Drivers:    repositories.DriverRepository{},
		Officers:   repositories.OfficerRepository{},
		Violations: repositories.ViolationRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

// GET /api/violations/next-id
//
// Display hint only: nothing reserves the returned value, and concurrent
// filings can see the same number. The id handed back by POST /violations is
// the one that counts.
func NextViolationID(c *gin.Context) {
	next, err := violationService(c).NextID()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_violation_id": next})
}

// POST /api/violations
//
// The filing officer is the authenticated caller; identity travels as an
// explicit argument into the service, never as ambient session state.
func RegisterViolation(c *gin.Context) {
	var req services.RegisterViolationInput
	if !BindJSONOrError(c, &req) {
		return
	}

	officerID := middleware.CallerID(c)
	if officerID <= 0 {
		respondError(c, http.StatusUnauthorized, "auth_error", "no authenticated officer")
		return
	}

	id, err := violationService(c).Register(officerID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"violation_id": id})
}

// GET /api/violation-types
func ListViolationTypes(c *gin.Context) {
	types, err := violationService(c).Types()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{
			"id":             t.ID,
			"violation_name": t.Name,
			"violation_fee":  utils.FormatMoney(t.Fee),
		})
	}
	c.JSON(http.StatusOK, gin.H{"violation_types": out})
}

// GET /api/violations/:id/ticket
func GetViolationTicket(c *gin.Context) {
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
	pdf, filename, err := svc.GenerateTicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
