// controllers/health.go
package controllers

import (
	"net/http"

	"salonbook-backend/config"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports process and database liveness
func HealthCheck(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	status := http.StatusOK
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
