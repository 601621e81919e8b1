package db

import (
	"fmt"
	"log"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the relational database connection. A Turso URL
// selects the remote libsql driver; otherwise a local sqlite file with
// WAL mode is used.
func Initialize(dbPath, tursoURL, tursoToken, environment string) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	var dialector gorm.Dialector
	if tursoURL != "" {
		dsn := tursoURL
		if tursoToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", tursoURL, tursoToken)
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", DSN: dsn})
	} else {
		// Enable WAL mode for better concurrency support
		dialector = sqlite.Open(dbPath + "?_journal_mode=WAL")
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
