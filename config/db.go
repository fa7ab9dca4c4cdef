package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entity "portal.GO/model/entity"
)

func NewDB() (*gorm.DB, error) {
	dsn := os.Getenv("SQLITE_DSN")
	if dsn == "" {
		LoadAppConfig()
		dsn = filepath.Join(AppConfig.DataDir, "portal.db")
	}

	logMode := logger.Silent
	if os.Getenv("GORM_LOG") == "on" {
		logMode = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&entity.Merchant{},
		&entity.Favorite{},
		&entity.AppState{},
		&entity.RefreshLock{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
