package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"milaunch/internal/storage/db"
)

// Vault stores timestamped backups of files about to be overwritten by a
// package installation. One session per install; sessions are never
// deleted automatically.
type Vault struct {
	backupsRoot string
	sessionPath string
	sessionID   int64
	db          *db.DB // Optional: enables the backup ledger
}

// NewVault creates a vault rooted at backupsRoot.
// The db parameter is optional - if nil, session tracking is disabled.
func NewVault(backupsRoot string, database *db.DB) *Vault {
	return &Vault{
		backupsRoot: backupsRoot,
		db:          database,
	}
}

// Initialize starts a fresh backup session named after the package and
// the current time. The session directory is created lazily on the first
// Backup call. Calling Initialize again abandons the prior session target.
func (v *Vault) Initialize(packageName string) error {
	name := packageName + " " + time.Now().Format("2006-01-02 15-04-05")
	v.sessionPath = filepath.Join(v.backupsRoot, name)
	v.sessionID = 0

	if v.db != nil {
		id, err := v.db.CreateBackupSession(packageName, v.sessionPath)
		if err != nil {
			return fmt.Errorf("recording backup session: %w", err)
		}
		v.sessionID = id
	}
	return nil
}

// SessionPath returns the current session directory, or "" before
// Initialize.
func (v *Vault) SessionPath() string {
	return v.sessionPath
}

// Backup copies filePath into the session directory under its original
// name, preserving mode and modification time. Missing files are a no-op.
func (v *Vault) Backup(filePath string) error {
	if v.sessionPath == "" {
		return errors.New("backup session not initialized")
	}
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", filePath, err)
	}

	if err := os.MkdirAll(v.sessionPath, 0755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}

	dst := filepath.Join(v.sessionPath, filepath.Base(filePath))
	if err := copyPreserving(filePath, dst); err != nil {
		return fmt.Errorf("backing up %s: %w", filePath, err)
	}

	if v.db != nil && v.sessionID != 0 {
		if err := v.db.AddBackupFile(v.sessionID, filepath.Base(filePath), filePath); err != nil {
			return fmt.Errorf("recording backup file: %w", err)
		}
	}
	return nil
}

// Restore copies the session's copy of filePath back over it. Mirrors
// Backup's guard: it is a no-op when filePath itself does not exist, so a
// restore only proceeds over an existing destination. A backed-up file
// whose destination was removed in between stays in the vault untouched.
// It is also a no-op when the session holds no copy, which is the normal
// case on a first install where Backup had nothing to save.
func (v *Vault) Restore(filePath string) error {
	if v.sessionPath == "" {
		return errors.New("backup session not initialized")
	}
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", filePath, err)
	}

	src := filepath.Join(v.sessionPath, filepath.Base(filePath))
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking backup copy %s: %w", src, err)
	}
	if err := copyPreserving(src, filePath); err != nil {
		return fmt.Errorf("restoring %s: %w", filePath, err)
	}
	return nil
}

// copyPreserving copies src to dst, carrying over file mode and mtime.
func copyPreserving(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return fmt.Errorf("copying file: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	if err := os.Chmod(dst, info.Mode()); err != nil {
		return fmt.Errorf("preserving mode: %w", err)
	}
	if err := os.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return fmt.Errorf("preserving mtime: %w", err)
	}
	return nil
}
