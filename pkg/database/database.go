package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/pkg/config"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(cfg *config.Config) error {
	logLevel := gormlogger.Error
	if cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	var err error
	switch cfg.DB.Driver {
	case "postgres":
		pgConfig := postgres.Config{
			DSN:                  cfg.DB.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}
		db, err = gorm.Open(postgres.New(pgConfig), gormCfg)
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.DB.SQLitePath), gormCfg)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	// Run migrations
	if err := db.AutoMigrate(&model.Product{}, &model.Category{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
