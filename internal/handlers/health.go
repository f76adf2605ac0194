package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.JSON(200, gin.H{
		"message":   "Taskdock API",
		"status":    "active",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"message":   "Taskdock is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
