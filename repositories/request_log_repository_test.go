package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/blogem/crm-web/database"
	"github.com/blogem/crm-web/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := filepath.Join(t.TempDir(), "test_"+time.Now().Format("20060102150405")+".db")

	// Initialize test database using the actual migration system
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestRequestLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestLogRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Test Create
	first := &models.RequestLogEntry{
		Timestamp: base,
		Username:  "alice",
		Method:    "POST",
		Path:      "/entities/ticket/42/comments",
		FormData:  `{"comment":"hello"}`,
		UserAgent: "test-agent",
		IPAddress: "10.0.0.1",
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Failed to create request log entry: %v", err)
	}
	if first.ID == 0 {
		t.Error("Expected entry ID to be set after creation")
	}

	second := &models.RequestLogEntry{
		Timestamp: base.Add(time.Minute),
		Username:  "bob",
		Method:    "POST",
		Path:      "/logout",
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Failed to create request log entry: %v", err)
	}

	// Test ListRecent
	entries, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("Failed to list request log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "bob" || entries[1].Username != "alice" {
		t.Errorf("Expected newest first, got %s then %s", entries[0].Username, entries[1].Username)
	}
	if entries[1].FormData != `{"comment":"hello"}` {
		t.Errorf("Expected form data to round-trip, got %s", entries[1].FormData)
	}
	if !entries[1].Timestamp.Equal(base) {
		t.Errorf("Expected timestamp %s, got %s", base, entries[1].Timestamp)
	}

	// Test limit
	limited, err := repo.ListRecent(1)
	if err != nil {
		t.Fatalf("Failed to list request log: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(limited))
	}
}

func TestRequestLogRepository_DefaultsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestLogRepository(db)

	entry := &models.RequestLogEntry{Method: "POST", Path: "/x"}
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create request log entry: %v", err)
	}
	if entry.Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("Expected second migration run to be a no-op, got %v", err)
	}
}
