package database

import (
	"fmt"

	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect 建立 PostgreSQL 連線
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	common.LogInfo("資料庫連線成功",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.DBName),
	)
	return db, nil
}

// Close 關閉資料庫連線
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		common.LogWarn("取得底層連線失敗", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		common.LogWarn("關閉資料庫連線失敗", zap.Error(err))
	}
}
