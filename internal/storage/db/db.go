package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB is the launcher's ledger: backup sessions taken before installs
// and the launch attempt history.
type DB struct {
	*sql.DB
}

// New opens (creating if needed) the ledger at path and brings its
// schema up to date.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	// Foreign keys for backup_files -> backup_sessions; WAL so a status
	// query never blocks a running launch.
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	ledger := &DB{DB: sqlDB}
	if err := ledger.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return ledger, nil
}
