package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

// MySQLStore is a MySQL implementation of the SubmissionStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL submission store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(64),
			message TEXT NOT NULL,
			work_name VARCHAR(255),
			status VARCHAR(32) NOT NULL,
			ip_address VARCHAR(64),
			user_agent VARCHAR(512),
			source VARCHAR(128),
			page VARCHAR(255),
			created_at TIMESTAMP NOT NULL,
			INDEX idx_created_at (created_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save creates a new submission record
func (s *MySQLStore) Save(ctx context.Context, record *core.SubmissionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions
			(name, email, phone, message, work_name, status, ip_address, user_agent, source, page, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.Name,
		record.Email,
		record.Phone,
		record.Message,
		record.WorkName,
		record.Status,
		record.ClientAddress,
		record.UserAgent,
		record.Source,
		record.Page,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission record: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close MySQL database: %w", err)
	}
	return nil
}
