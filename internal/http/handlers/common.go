package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var jwtSecret = []byte("lto-dev-secret-change-me")

// SetJWTSecret wires the signing key from config at router setup.
func SetJWTSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// JWTSecret exposes the active signing key to the auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error())
		return false
	}
	return true
}

// IDParamOrError parses the :id path parameter.
func IDParamOrError(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return 0, false
	}
	return id, true
}
