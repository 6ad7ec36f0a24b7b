package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"case-renamer/internal/scan"
)

const (
	ActionRename = "RENAME"
	ActionError  = "ERROR"
)

// RenameDB manages the SQLite database for rename history
type RenameDB struct {
	db *sql.DB
}

// RenameRecord represents a single attempted rename
type RenameRecord struct {
	ID           int64
	Timestamp    time.Time
	Action       string
	Directory    string
	OldName      string
	NewName      string
	ErrorMessage string
	CreatedAt    time.Time
}

// NewRenameDB creates a new database connection and initializes schema
func NewRenameDB(dbPath string) (*RenameDB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Executing a statement creates the file; Ping does not
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize database (check permissions on %s): %w", dbPath, err)
	}

	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	rdb := &RenameDB{db: db}
	if err = rdb.initSchema(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// initSchema creates tables and indexes if they don't exist
func (d *RenameDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		directory TEXT NOT NULL,
		old_name TEXT NOT NULL,
		new_name TEXT NOT NULL,
		error_message TEXT,

		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_timestamp ON renames(timestamp);
	CREATE INDEX IF NOT EXISTS idx_action ON renames(action);
	CREATE INDEX IF NOT EXISTS idx_directory ON renames(directory);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := d.db.Exec(schema)
	return err
}

// RecordRename inserts a rename attempt stamped with the current time
func (d *RenameDB) RecordRename(action string, plan scan.Plan, errorMsg string) error {
	return d.RecordRenameAt(time.Now(), action, plan, errorMsg)
}

// RecordRenameAt inserts a rename attempt with an explicit timestamp
func (d *RenameDB) RecordRenameAt(ts time.Time, action string, plan scan.Plan, errorMsg string) error {
	var errMsg sql.NullString
	if errorMsg != "" {
		errMsg = sql.NullString{String: errorMsg, Valid: true}
	}

	_, err := d.db.Exec(`
	INSERT INTO renames (timestamp, action, directory, old_name, new_name, error_message)
	VALUES (?, ?, ?, ?, ?, ?)
	`, ts, action, plan.Dir, plan.OldName, plan.NewName, errMsg)
	return err
}

// Close closes the database connection
func (d *RenameDB) Close() error {
	return d.db.Close()
}

// Vacuum optimizes the database (run periodically)
func (d *RenameDB) Vacuum() error {
	_, err := d.db.Exec("VACUUM")
	return err
}
