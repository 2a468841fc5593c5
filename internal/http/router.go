package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "ltobackend/internal/config"
	h "ltobackend/internal/http/handlers"
	"ltobackend/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth(h.JWTSecret())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		// Drivers
		drivers := api.Group("/drivers")
		drivers.POST("/verify", h.VerifyDriverExists)
		drivers.GET("/:id", auth, h.GetDriverDetails)
		drivers.GET("/:id/penalties", auth, h.ListDriverPenalties)
		drivers.GET("/:id/payments", auth, h.ListDriverPayments)

		// Officers
		officers := api.Group("/officers", auth, middleware.RequireRoles("officer", "admin"))
		officers.GET("/:id", h.GetOfficerDetails)

		// Violations
		api.GET("/violation-types", h.ListViolationTypes)
		violations := api.Group("/violations")
		violations.GET("/next-id", auth, middleware.RequireRoles("officer"), h.NextViolationID)
		violations.POST("", auth, middleware.RequireRoles("officer"), h.RegisterViolation)
		violations.GET("/:id/ticket", auth, middleware.RequireRoles("officer", "admin"), h.GetViolationTicket)

		// Payments
		payments := api.Group("/payments")
		payments.POST("", auth, middleware.RequireRoles("driver"), h.SubmitPayment)
		payments.GET("/:id/receipt", auth, h.GetPaymentReceipt)

		// Admin
		admin := api.Group("/admin", auth, middleware.RequireRoles("admin"))
		admin.GET("/drivers", h.ListAllDrivers)
		admin.GET("/payments", h.ListAllPayments)
		admin.PUT("/drivers/:id/verify", h.AdminVerifyDriver)
		admin.PUT("/drivers/:id/license-expiry", h.AdminUpdateLicenseExpiry)
		admin.PUT("/payments/:id/complete", h.AdminCompletePayment)
		admin.GET("/:id", h.AdminGetDetails)
		admin.GET("/:id/audit-logs", h.AdminGetAuditLogs)
	}

	return r
}
