package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chynybekuuludastan/content_gateway/internal/database/migration"
)

// Logger is the logging surface the database helpers need
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
}

// DatabaseClient wraps the GORM DB connection
type DatabaseClient struct {
	*gorm.DB
}

// InitPostgreSQL opens the connection, sizes the pool and applies pending migrations
func InitPostgreSQL(dsn string, debug bool, logger Logger) (*DatabaseClient, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	migrator, err := migration.NewMigrator(db, logger)
	if err != nil {
		return nil, err
	}
	if err := migrator.Migrate(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL database")
	return &DatabaseClient{DB: db}, nil
}

// Close closes the database connection
func (d *DatabaseClient) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
