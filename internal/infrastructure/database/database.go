package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rewear/internal/domain/entity"
	"rewear/pkg/config"
	"rewear/pkg/logger"
)

// Connect opens the SQL store selected by STORE_DRIVER and migrates the schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	case config.StorePostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DBDSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpen := cfg.DBMaxOpenConns
	if cfg.StoreDriver == config.StoreSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.L().Info("Database connected",
		zap.String("driver", cfg.StoreDriver),
		zap.Int("max_open_conns", maxOpen),
	)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}, &entity.Product{}, &entity.SwapRequest{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return backfillSearchFields(db)
}

// backfillSearchFields folds search columns for rows written before they existed.
func backfillSearchFields(db *gorm.DB) error {
	var stale []*entity.Product
	if err := db.Where("search_text IS NULL OR search_text = ''").Find(&stale).Error; err != nil {
		return fmt.Errorf("failed to load products for search backfill: %w", err)
	}

	for _, p := range stale {
		p.FoldSearchFields()
		err := db.Model(&entity.Product{}).Where("id = ?", p.ID).UpdateColumns(map[string]interface{}{
			"search_text": p.SearchText,
			"address_key": p.AddressKey,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to backfill search fields: %w", err)
		}
	}
	if len(stale) > 0 {
		logger.L().Info("Backfilled product search fields", zap.Int("products", len(stale)))
	}
	return nil
}

func newGormLogger(cfg *config.Config) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(logger.L()), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseLogLevel(cfg.DBLogLevel, cfg.IsProduction()),
		IgnoreRecordNotFoundError: true,
	})
}

func parseLogLevel(level string, production bool) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	}
	if production {
		return gormlogger.Error
	}
	return gormlogger.Info
}
