package database

import (
	"log"
	"os"
	"strings"

	"github.com/codyseavey/padguide/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(os.Getenv("DB_LOG_LEVEL"))),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	if err := cleanupDuplicateEvolutions(DB); err != nil {
		return err
	}

	// Auto-migrate the schema
	err = DB.AutoMigrate(&models.Series{}, &models.Monster{}, &models.Evolution{}, &models.Transformation{})
	if err != nil {
		return err
	}

	if err := RunMigrations(DB); err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// LogLevel maps DB_LOG_LEVEL to a gorm log level. Unset means warn.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
