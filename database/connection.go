package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ananth-NQI/govjobs-backend/internal/config"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
)

// Connect opens the PostgreSQL connection described by cfg.
func Connect(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		logger.Info("connecting to Cloud SQL via socket", zap.String("instance", cfg.InstanceConnectionName))
	} else if cfg.URL == "" {
		logger.Info("connecting to PostgreSQL", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database connected")
	return db, nil
}

// Migrate creates or updates every table the portal uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.OTPChallenge{},
		&models.Job{},
		&models.JobApplication{},
		&models.Payment{},
		&models.AdminSettings{},
	)
}
