package main

import (
	"ecommerce_api/internal/config" // Custom import path (Config)
	"ecommerce_api/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Open a connection to the database
	conn, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}

	db.Migrate(conn) // Create or update the schema

	// Seed sample data when the toggle is set
	if cfg.SeedData {
		if err := db.Seed(conn); err != nil {
			logrus.Fatalf("seed failed: %v", err)
		}
	}
}
