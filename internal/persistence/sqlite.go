package persistence

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/agate-ltd/agency-crm/internal/repository/gormstore"
)

// SQLite wraps a gorm handle backed by a single-connection SQLite database.
type SQLite struct {
	DB *gorm.DB
}

// NewSQLite opens the database at dsn and creates the schema.
// Use "file:<name>?mode=memory&cache=shared" for an ephemeral store.
func NewSQLite(dsn string, logger *zap.Logger) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// sqlite serialises writers; one connection also keeps shared in-memory databases alive
	sqlDB.SetMaxOpenConns(1)

	if err := gormstore.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Info("sqlite store ready", zap.String("dsn", dsn))
	return &SQLite{DB: db}, nil
}

// Close releases the underlying connection.
func (s *SQLite) Close() {
	if s == nil || s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Ping verifies the database answers.
func (s *SQLite) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
