package db

import (
	"fmt"
	"time"
)

// BackupSession is one recorded install-time backup session
type BackupSession struct {
	ID          int64
	PackageName string
	SessionPath string
	CreatedAt   time.Time
	FileCount   int
}

// CreateBackupSession records a new backup session and returns its ID
func (d *DB) CreateBackupSession(packageName, sessionPath string) (int64, error) {
	res, err := d.Exec(
		"INSERT INTO backup_sessions (package_name, session_path) VALUES (?, ?)",
		packageName, sessionPath,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting backup session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting session id: %w", err)
	}
	return id, nil
}

// AddBackupFile records a file copied into a backup session
func (d *DB) AddBackupFile(sessionID int64, fileName, sourcePath string) error {
	_, err := d.Exec(
		"INSERT INTO backup_files (session_id, file_name, source_path) VALUES (?, ?, ?)",
		sessionID, fileName, sourcePath,
	)
	if err != nil {
		return fmt.Errorf("inserting backup file: %w", err)
	}
	return nil
}

// ListBackupSessions returns sessions for a package, newest first. An
// empty packageName lists sessions for all packages.
func (d *DB) ListBackupSessions(packageName string) ([]BackupSession, error) {
	query := `
		SELECT s.id, s.package_name, s.session_path, s.created_at, COUNT(f.id)
		FROM backup_sessions s
		LEFT JOIN backup_files f ON f.session_id = s.id`
	args := []any{}
	if packageName != "" {
		query += " WHERE s.package_name = ?"
		args = append(args, packageName)
	}
	query += " GROUP BY s.id ORDER BY s.created_at DESC, s.id DESC"

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying backup sessions: %w", err)
	}
	defer rows.Close()

	var sessions []BackupSession
	for rows.Next() {
		var s BackupSession
		if err := rows.Scan(&s.ID, &s.PackageName, &s.SessionPath, &s.CreatedAt, &s.FileCount); err != nil {
			return nil, fmt.Errorf("scanning backup session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
