package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"case-renamer/internal/scan"
)

func openTestDB(t *testing.T) *RenameDB {
	t.Helper()
	db, err := NewRenameDB(filepath.Join(t.TempDir(), "renames.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
	return db
}

// TestDatabaseCreation verifies database file creation, including missing parent directories
func TestDatabaseCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "renames.db")

	db, err := NewRenameDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("Database file not created at %s", dbPath)
	}
}

// TestWALModeEnabled verifies that WAL mode is properly configured
func TestWALModeEnabled(t *testing.T) {
	db := openTestDB(t)

	var journalMode string
	if err := db.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}
}

// TestSchemaCreation verifies tables, indexes and schema version
func TestSchemaCreation(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"renames", "schema_version"} {
		var name string
		err := db.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("%s table not found: %v", table, err)
		}
	}

	var version int
	if err := db.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		t.Errorf("Failed to read schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}

	for _, indexName := range []string{"idx_timestamp", "idx_action", "idx_directory"} {
		var name string
		err := db.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", indexName).Scan(&name)
		if err != nil {
			t.Errorf("Index %s not found: %v", indexName, err)
		}
	}
}

// TestSchemaIsReentrant verifies reopening an existing database keeps its rows
func TestSchemaIsReentrant(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "renames.db")

	db, err := NewRenameDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	if err := db.RecordRename(ActionRename, scan.PlanFor("/photos", "a.JPG", ".JPG", ".jpg"), ""); err != nil {
		t.Fatalf("Failed to record rename: %v", err)
	}
	db.Close()

	db, err = NewRenameDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	records, err := db.GetRecentRenames(10)
	if err != nil {
		t.Fatalf("GetRecentRenames failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record after reopen, got %d", len(records))
	}
}

// TestRecordRename verifies insertion and retrieval of both actions
func TestRecordRename(t *testing.T) {
	db := openTestDB(t)

	ok := scan.PlanFor("/photos", "a.JPG", ".JPG", ".jpg")
	failed := scan.PlanFor("/photos", "b.JPG", ".JPG", ".jpg")

	if err := db.RecordRename(ActionRename, ok, ""); err != nil {
		t.Fatalf("Failed to record rename: %v", err)
	}
	if err := db.RecordRename(ActionError, failed, "file exists"); err != nil {
		t.Fatalf("Failed to record error: %v", err)
	}

	records, err := db.GetRenamesByAction(ActionError)
	if err != nil {
		t.Fatalf("GetRenamesByAction failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 error record, got %d", len(records))
	}

	r := records[0]
	if r.Directory != "/photos" || r.OldName != "b.JPG" || r.NewName != "b.jpg" {
		t.Errorf("Unexpected record: %+v", r)
	}
	if r.ErrorMessage != "file exists" {
		t.Errorf("Expected error message, got %q", r.ErrorMessage)
	}

	renamed, err := db.GetRenamesByAction(ActionRename)
	if err != nil {
		t.Fatalf("GetRenamesByAction failed: %v", err)
	}
	if len(renamed) != 1 || renamed[0].ErrorMessage != "" {
		t.Errorf("Expected 1 rename without error message, got %+v", renamed)
	}
}

// TestQueryMethods verifies the read side used by the query CLI
func TestQueryMethods(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	old := now.AddDate(0, 0, -40)

	testData := []struct {
		action string
		dir    string
		name   string
		ts     time.Time
	}{
		{ActionRename, "/photos/2024", "a.JPG", old},
		{ActionRename, "/photos/2024", "b.JPG", now},
		{ActionRename, "/scans", "c.JPG", now},
		{ActionError, "/scans", "d.JPG", now},
	}

	for _, td := range testData {
		if err := db.RecordRenameAt(td.ts, td.action, scan.PlanFor(td.dir, td.name, ".JPG", ".jpg"), ""); err != nil {
			t.Fatalf("Failed to insert %s: %v", td.name, err)
		}
	}

	t.Run("GetRecentRenames", func(t *testing.T) {
		records, err := db.GetRecentRenames(2)
		if err != nil {
			t.Fatalf("GetRecentRenames failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		for _, r := range records {
			if r.OldName == "a.JPG" {
				t.Errorf("Oldest record should not be among the 2 most recent")
			}
		}
	})

	t.Run("GetRenamesByDirectory", func(t *testing.T) {
		records, err := db.GetRenamesByDirectory("/photos/%")
		if err != nil {
			t.Fatalf("GetRenamesByDirectory failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("Expected 2 records under /photos, got %d", len(records))
		}
	})

	t.Run("GetRenamesByDateRange", func(t *testing.T) {
		records, err := db.GetRenamesByDateRange(now.Add(-time.Hour), now.Add(time.Hour))
		if err != nil {
			t.Fatalf("GetRenamesByDateRange failed: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("Expected 3 recent records, got %d", len(records))
		}
	})

	t.Run("GetRenameStats", func(t *testing.T) {
		stats, err := db.GetRenameStats(30)
		if err != nil {
			t.Fatalf("GetRenameStats failed: %v", err)
		}
		if stats.TotalRenames != 2 {
			t.Errorf("Expected 2 renames in window, got %d", stats.TotalRenames)
		}
		if stats.TotalErrors != 1 {
			t.Errorf("Expected 1 error in window, got %d", stats.TotalErrors)
		}
		if stats.ByDirectory["/photos/2024"] != 1 || stats.ByDirectory["/scans"] != 1 {
			t.Errorf("Unexpected per-directory counts: %v", stats.ByDirectory)
		}
	})

	t.Run("DeleteOldRecords", func(t *testing.T) {
		n, err := db.DeleteOldRecords(30)
		if err != nil {
			t.Fatalf("DeleteOldRecords failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 pruned record, got %d", n)
		}
		if err := db.Vacuum(); err != nil {
			t.Errorf("Vacuum failed: %v", err)
		}
	})
}
