package database

import (
	"database/sql"
	"time"
)

const selectColumns = `SELECT id, timestamp, action, directory, old_name, new_name, error_message FROM renames`

// GetRecentRenames returns the N most recent rename attempts
func (d *RenameDB) GetRecentRenames(limit int) ([]RenameRecord, error) {
	return d.queryRenames(selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
}

// GetRenamesByAction returns rename attempts filtered by action
func (d *RenameDB) GetRenamesByAction(action string) ([]RenameRecord, error) {
	return d.queryRenames(selectColumns+` WHERE action = ? ORDER BY timestamp DESC, id DESC`, action)
}

// GetRenamesByDirectory returns rename attempts whose directory matches a SQL LIKE pattern
func (d *RenameDB) GetRenamesByDirectory(pattern string) ([]RenameRecord, error) {
	return d.queryRenames(selectColumns+` WHERE directory LIKE ? ORDER BY timestamp DESC, id DESC`, pattern)
}

// GetRenamesByDateRange returns rename attempts within a time range
func (d *RenameDB) GetRenamesByDateRange(start, end time.Time) ([]RenameRecord, error) {
	return d.queryRenames(selectColumns+` WHERE timestamp BETWEEN ? AND ? ORDER BY timestamp DESC, id DESC`, start, end)
}

// RenameStats holds aggregated statistics
type RenameStats struct {
	TotalRenames int
	TotalErrors  int
	ByDirectory  map[string]int
	StartDate    time.Time
	EndDate      time.Time
}

// GetRenameStats returns statistics for the last days days
func (d *RenameDB) GetRenameStats(days int) (*RenameStats, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -days)

	stats := &RenameStats{
		StartDate: since,
		EndDate:   now,
	}

	err := d.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN action = 'RENAME' THEN 1 END),
			COUNT(CASE WHEN action = 'ERROR' THEN 1 END)
		FROM renames
		WHERE timestamp >= ?
	`, since).Scan(&stats.TotalRenames, &stats.TotalErrors)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT directory, COUNT(*)
		FROM renames
		WHERE action = 'RENAME' AND timestamp >= ?
		GROUP BY directory
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.ByDirectory = make(map[string]int)
	for rows.Next() {
		var dir string
		var count int
		if err := rows.Scan(&dir, &count); err != nil {
			return nil, err
		}
		stats.ByDirectory[dir] = count
	}

	return stats, rows.Err()
}

// DeleteOldRecords removes records older than specified days
func (d *RenameDB) DeleteOldRecords(olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	result, err := d.db.Exec(`DELETE FROM renames WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// queryRenames executes a query and scans results
func (d *RenameDB) queryRenames(query string, args ...interface{}) ([]RenameRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RenameRecord
	for rows.Next() {
		var r RenameRecord
		var errMsg sql.NullString

		err := rows.Scan(&r.ID, &r.Timestamp, &r.Action, &r.Directory, &r.OldName, &r.NewName, &errMsg)
		if err != nil {
			return nil, err
		}

		if errMsg.Valid {
			r.ErrorMessage = errMsg.String
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
