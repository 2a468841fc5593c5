package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "ltobackend/internal/config"
	intdb "ltobackend/internal/db"
)

var coreTables = []string{
	"driver_user",
	"law_officer",
	"lto_admin_user",
	"violation_type",
	"violations",
	"violations_details",
	"payment",
	"audit_log",
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "lto backend running"})
}

// DBCheck verifies the pool is reachable and every core table exists.
func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}

	missing := []string{}
	for _, table := range coreTables {
		if !intdb.HasTable(intconfig.DB, table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "schema incomplete",
			"missing_tables": missing,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}
