package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/blogem/boardhook/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *sqliteAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query := `
		INSERT INTO audit_log (timestamp, request_id, user_email, method, path, form_data, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		entry.Timestamp,
		entry.RequestID,
		entry.UserEmail,
		entry.Method,
		entry.Path,
		entry.FormData,
		entry.UserAgent,
		entry.IPAddress,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}
