package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pricelens/config"
	"pricelens/models"
)

var DB *gorm.DB

func InitDB(cfg config.Database, log *zap.Logger) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// The workload is one writer (load) and read-heavy analytics queries.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := DB.AutoMigrate(&models.Price{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := OptimizeIndexes(DB); err != nil {
		log.Warn("failed to optimize indexes", zap.Error(err))
	}

	log.Info("database connected and migrated",
		zap.String("host", cfg.Host), zap.String("name", cfg.Name))
	return nil
}

// ReplaceAll overwrites the stored history of one asset inside a single
// transaction, so readers never observe a partially replaced table.
func ReplaceAll(ctx context.Context, assetID int, prices []models.Price) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", assetID).Delete(&models.Price{}).Error; err != nil {
			return fmt.Errorf("failed to clear asset %d: %w", assetID, err)
		}
		if len(prices) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(prices, 500).Error; err != nil {
			return fmt.Errorf("failed to insert prices: %w", err)
		}
		return nil
	})
}

// QueryAll fetches the whole prices table. No ordering is imposed;
// callers that care must sort.
func QueryAll(ctx context.Context) ([]models.Price, error) {
	var prices []models.Price
	if err := DB.WithContext(ctx).Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	return prices, nil
}

// QueryAsset fetches all rows for one asset.
func QueryAsset(ctx context.Context, assetID int) ([]models.Price, error) {
	var prices []models.Price
	if err := DB.WithContext(ctx).Where("asset_id = ?", assetID).Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to query prices for asset %d: %w", assetID, err)
	}
	return prices, nil
}
