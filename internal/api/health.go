package api

import (
	"net/http" // HTTP status codes
	"time"     // Health check timestamps

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// StatusHandler reports that the API is up
func StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "E-commerce API is running",     // Human-readable status
			"status":    "ok",                            // Machine-readable status
			"timestamp": time.Now().Format(time.RFC3339), // Current time
			"version":   "1.0.0",                         // API version
		})
	}
}

// HealthHandler pings the database and reports overall service health
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy" // Assume healthy until the ping fails
		if err := db.Exec("SELECT 1").Error; err != nil {
			dbStatus = "unhealthy"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",                            // Service status
			"service":   "ecommerce-api",                 // Service name
			"version":   "1.0.0",                         // API version
			"database":  gin.H{"status": dbStatus},       // Database ping result
			"timestamp": time.Now().Format(time.RFC3339), // Current time
		})
	}
}

// DatabaseInfoHandler lists the migrated tables
func DatabaseInfoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := db.Migrator().GetTables() // Ask the migrator for table names
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to inspect database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tables":    tables,                          // Table names
			"timestamp": time.Now().Format(time.RFC3339), // Current time
		})
	}
}
