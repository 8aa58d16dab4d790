package db

import (
	"fmt"
	"time"
)

// Launch outcomes recorded in launch_history
const (
	OutcomeInjected       = "injected"
	OutcomeReinstall      = "aborted-for-reinstall"
	OutcomeSettings       = "aborted-for-settings"
	OutcomeCorruptInstall = "corrupt-installation"
	OutcomeError          = "error"
)

// LaunchRecord is one entry of the launch history
type LaunchRecord struct {
	ID          int64
	PackageName string
	ExePath     string
	Outcome     string
	LaunchedAt  time.Time
}

// RecordLaunch appends a launch attempt to the history
func (d *DB) RecordLaunch(packageName, exePath, outcome string) error {
	_, err := d.Exec(
		"INSERT INTO launch_history (package_name, exe_path, outcome) VALUES (?, ?, ?)",
		packageName, exePath, outcome,
	)
	if err != nil {
		return fmt.Errorf("inserting launch record: %w", err)
	}
	return nil
}

// RecentLaunches returns the latest launch attempts for a package,
// newest first, capped at limit.
func (d *DB) RecentLaunches(packageName string, limit int) ([]LaunchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.Query(`
		SELECT id, package_name, COALESCE(exe_path, ''), outcome, launched_at
		FROM launch_history
		WHERE package_name = ?
		ORDER BY launched_at DESC, id DESC
		LIMIT ?`, packageName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying launch history: %w", err)
	}
	defer rows.Close()

	var records []LaunchRecord
	for rows.Next() {
		var r LaunchRecord
		if err := rows.Scan(&r.ID, &r.PackageName, &r.ExePath, &r.Outcome, &r.LaunchedAt); err != nil {
			return nil, fmt.Errorf("scanning launch record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
