package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/insightexus/site/internal/models"
)

// SQLiteStorage implements InquiryStore using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		company TEXT,
		service TEXT,
		message TEXT NOT NULL,
		attachment_name TEXT,
		attachment_preview TEXT,
		status TEXT NOT NULL,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
	CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries(status);
	`
	_, err := db.Exec(schema)
	return err
}

const inquiryColumns = `id, name, email, phone, company, service, message,
	attachment_name, attachment_preview, status, error, created_at, updated_at`

// CreateInquiry inserts an inquiry. An empty ID is filled with a new UUID and an
// empty status defaults to pending.
func (s *SQLiteStorage) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	if inq.ID == "" {
		inq.ID = uuid.New().String()
	}
	if inq.Status == "" {
		inq.Status = models.InquiryPending
	}
	now := time.Now()
	inq.CreatedAt = now
	inq.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inquiries (`+inquiryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inq.ID, inq.Name, inq.Email, inq.Phone, inq.Company, inq.Service, inq.Message,
		inq.AttachmentName, inq.AttachmentPreview, string(inq.Status), inq.Error,
		inq.CreatedAt, inq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

// UpdateInquiryStatus records the dispatch outcome of an inquiry.
func (s *SQLiteStorage) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus, errMsg string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), errMsg, time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrInquiryNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	var inq models.Inquiry
	var phone, company, service, attName, attPreview, errMsg sql.NullString
	var status string
	if err := row.Scan(&inq.ID, &inq.Name, &inq.Email, &phone, &company, &service, &inq.Message,
		&attName, &attPreview, &status, &errMsg, &inq.CreatedAt, &inq.UpdatedAt); err != nil {
		return nil, err
	}
	inq.Phone = phone.String
	inq.Company = company.String
	inq.Service = service.String
	inq.AttachmentName = attName.String
	inq.AttachmentPreview = attPreview.String
	inq.Status = models.InquiryStatus(status)
	inq.Error = errMsg.String
	return &inq, nil
}

// GetInquiry returns an inquiry by ID.
func (s *SQLiteStorage) GetInquiry(ctx context.Context, id string) (*models.Inquiry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = ?`, id)
	inq, err := scanInquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrInquiryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// ListInquiries returns inquiries newest first with offset and limit.
func (s *SQLiteStorage) ListInquiries(ctx context.Context, offset, limit int) ([]*models.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, rows.Err()
}

// CountInquiries returns the number of inquiries per status.
func (s *SQLiteStorage) CountInquiries(ctx context.Context) (map[models.InquiryStatus]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM inquiries GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.InquiryStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.InquiryStatus(status)] = n
	}
	return counts, rows.Err()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
