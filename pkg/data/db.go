// Package data holds the Postgres models.
package data

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RecentPlace is one entry of a visitor's recent places. Position 0 is the
// most recent.
type RecentPlace struct {
	gorm.Model
	VisitorID string `gorm:"index;not null"`
	Position  int
	Label     string
	Lat, Long float64
	TimeZone  string
}

// DSNFromEnv builds a connection string from the libpq environment, or returns
// "" when PGHOST is unset.
func DSNFromEnv() string {
	host := os.Getenv("PGHOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("PGPORT")
	if port == "" {
		port = "5432"
	}
	user := os.Getenv("PGUSER")
	if user == "" {
		user = "postgres"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=goldenhour port=%s sslmode=disable TimeZone=UTC",
		host,
		user,
		os.Getenv("PGPASSWORD"),
		port)
}

// Open connects to Postgres and migrates the models.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&RecentPlace{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
