package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/adapters/storage"
	"github.com/shadowine/contact-intake/internal/config"
	"github.com/shadowine/contact-intake/internal/core"
)

// StorageFactory creates submission stores based on configuration
type StorageFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config, logger *zap.Logger) *StorageFactory {
	return &StorageFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSubmissionStore creates a submission store based on the configuration
func (f *StorageFactory) CreateSubmissionStore() (core.SubmissionStore, error) {
	storageType := f.cfg.GetString("storage.type")

	switch storageType {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("storage.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return storage.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("storage.mysql_dsn")
		return storage.NewMySQLStore(mysqlDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
