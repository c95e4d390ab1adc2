package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/crm-web/models"
)

// RequestLogRepository handles request journal persistence
type RequestLogRepository interface {
	Create(entry *models.RequestLogEntry) error
	ListRecent(limit int) ([]models.RequestLogEntry, error)
}

type sqliteRequestLogRepository struct {
	db *sql.DB
}

// NewRequestLogRepository creates a new request log repository
func NewRequestLogRepository(db *sql.DB) RequestLogRepository {
	return &sqliteRequestLogRepository{db: db}
}

// Create inserts a new request log entry
func (r *sqliteRequestLogRepository) Create(entry *models.RequestLogEntry) error {
	query := `
		INSERT INTO request_log (timestamp, username, method, path, form_data, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(
		query,
		entry.Timestamp,
		entry.Username,
		entry.Method,
		entry.Path,
		entry.FormData,
		entry.UserAgent,
		entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read request log entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListRecent returns the newest entries first
func (r *sqliteRequestLogRepository) ListRecent(limit int) ([]models.RequestLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, timestamp, username, method, path, form_data, user_agent, ip_address
		FROM request_log
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query request log: %w", err)
	}
	defer rows.Close()

	entries := []models.RequestLogEntry{}
	for rows.Next() {
		var entry models.RequestLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Username,
			&entry.Method,
			&entry.Path,
			&entry.FormData,
			&entry.UserAgent,
			&entry.IPAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
