package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

// SQLiteStore is a SQLite implementation of the SubmissionStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite submission store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			message TEXT NOT NULL,
			work_name TEXT,
			status TEXT NOT NULL,
			ip_address TEXT,
			user_agent TEXT,
			source TEXT,
			page TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save creates a new submission record
func (s *SQLiteStore) Save(ctx context.Context, record *core.SubmissionRecord) error {
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
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}
