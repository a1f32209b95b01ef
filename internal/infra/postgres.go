package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quill/internal/config"
	"quill/internal/models/db_models"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// InitPostgresql opens the database named by DATABASE_URL. It returns a nil
// *gorm.DB when no URL is configured, which disables persistence.
func InitPostgresql(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, running without persistence")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	err = retry.Do(
		func() error {
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("database ping failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return db, nil
}

// Migrate runs AutoMigrate for every persisted entity.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: DATABASE_URL is not configured")
	}
	return db.WithContext(ctx).AutoMigrate(db_models.AllModels()...)
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed")
	}
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	tx := db.Begin()
	if tx.Error != nil {
		zap.L().Error("error starting transaction", zap.Error(tx.Error))
	}
	return tx
}

func ReleaseTransaction(tx *gorm.DB, err error) {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			zap.L().Error("error rolling back transaction", zap.Error(rollbackErr), zap.NamedError("cause", err))
		}
		return
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		zap.L().Error("error committing transaction", zap.Error(commitErr))
	}
}
