package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"milaunch/internal/domain"
	"milaunch/internal/events"

	"github.com/rs/zerolog"
)

// Installer applies a downloaded importer package to its install folder.
// Install is two-phase: bulk file replace, then selective rollback of
// d3dx.ini when the configuration says not to overwrite it.
type Installer struct {
	vault   *Vault
	emitter events.Emitter
	appRoot string
	log     zerolog.Logger
}

// NewInstaller creates an installer backed by the given backup vault
func NewInstaller(vault *Vault, emitter events.Emitter, appRoot string, logger zerolog.Logger) *Installer {
	return &Installer{
		vault:   vault,
		emitter: emitter,
		appRoot: appRoot,
		log:     logger,
	}
}

// InstallLatestVersion moves the downloaded package contents over the
// importer install path, preserving the existing d3dx.ini through the
// backup vault when cfg.OverwriteIni is false.
func (i *Installer) InstallLatestVersion(ctx context.Context, cfg *domain.ImporterConfig, downloadedPath string) error {
	i.emitter.Emit(events.InstallStarted{PackageName: cfg.PackageName})
	i.log.Info().Str("package", cfg.PackageName).Str("from", downloadedPath).Msg("installing")

	if err := i.vault.Initialize(cfg.PackageName); err != nil {
		return err
	}

	iniPath := cfg.IniPath(i.appRoot)
	if err := i.vault.Backup(iniPath); err != nil {
		return err
	}

	if err := moveContents(ctx, downloadedPath, cfg.ImporterPath(i.appRoot)); err != nil {
		return fmt.Errorf("moving package contents: %w", err)
	}

	if !cfg.OverwriteIni {
		if err := i.vault.Restore(iniPath); err != nil {
			return err
		}
	}
	return nil
}

// moveContents moves every entry of src into dst, overwriting existing
// entries. Rename is tried first; cross-device moves fall back to
// copy-and-delete.
func moveContents(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if err := os.RemoveAll(dstPath); err != nil {
			return fmt.Errorf("clearing %s: %w", dstPath, err)
		}
		if err := os.Rename(srcPath, dstPath); err == nil {
			continue
		}
		if err := copyTree(srcPath, dstPath); err != nil {
			return err
		}
		if err := os.RemoveAll(srcPath); err != nil {
			return fmt.Errorf("removing %s: %w", srcPath, err)
		}
	}
	return nil
}

// copyTree copies a file or directory tree preserving modes.
func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	if err := os.MkdirAll(dst, info.Mode()); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	for _, entry := range entries {
		if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return dstFile.Close()
}
