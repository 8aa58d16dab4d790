package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"milaunch/internal/domain"
	"milaunch/internal/events"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type installerFixture struct {
	installer  *Installer
	vault      *Vault
	recorder   *events.Recorder
	cfg        *domain.ImporterConfig
	appRoot    string
	downloaded string
}

func newInstallerFixture(t *testing.T) *installerFixture {
	t.Helper()
	appRoot := t.TempDir()

	// Existing installation with a user-tuned d3dx.ini
	importerDir := filepath.Join(appRoot, "GIMI")
	require.NoError(t, os.MkdirAll(importerDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(importerDir, "d3dx.ini"),
		[]byte("; user tuned\n[Loader]\nloader = old.exe\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(importerDir, "old-file.dll"), []byte("old"), 0644))

	// Downloaded package contents
	downloaded := filepath.Join(appRoot, "downloads", "GIMI-v2")
	require.NoError(t, os.MkdirAll(filepath.Join(downloaded, "Mods"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(downloaded, "d3dx.ini"),
		[]byte("[Loader]\nloader = new.exe\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(downloaded, "Mods", "README.txt"), []byte("mods"), 0644))

	cfg := &domain.ImporterConfig{
		PackageName:    "GIMI",
		ImporterFolder: "GIMI",
		OverwriteIni:   true,
	}
	recorder := &events.Recorder{}
	vault := NewVault(filepath.Join(appRoot, "backups"), nil)

	return &installerFixture{
		installer:  NewInstaller(vault, recorder, appRoot, zerolog.Nop()),
		vault:      vault,
		recorder:   recorder,
		cfg:        cfg,
		appRoot:    appRoot,
		downloaded: downloaded,
	}
}

func TestInstall_OverwritesIni(t *testing.T) {
	f := newInstallerFixture(t)

	require.NoError(t, f.installer.InstallLatestVersion(context.Background(), f.cfg, f.downloaded))

	data, err := os.ReadFile(f.cfg.IniPath(f.appRoot))
	require.NoError(t, err)
	assert.Contains(t, string(data), "new.exe")

	// New package contents landed alongside
	_, err = os.Stat(filepath.Join(f.cfg.ImporterPath(f.appRoot), "Mods", "README.txt"))
	assert.NoError(t, err)

	// Install was announced
	started, ok := findSignal[events.InstallStarted](f.recorder.Signals())
	require.True(t, ok)
	assert.Equal(t, "GIMI", started.PackageName)
}

func TestInstall_PreservesIniWhenConfigured(t *testing.T) {
	f := newInstallerFixture(t)
	f.cfg.OverwriteIni = false

	require.NoError(t, f.installer.InstallLatestVersion(context.Background(), f.cfg, f.downloaded))

	// The pre-install ini was rolled back after the bulk replace
	data, err := os.ReadFile(f.cfg.IniPath(f.appRoot))
	require.NoError(t, err)
	assert.Contains(t, string(data), "old.exe")
	assert.Contains(t, string(data), "; user tuned")

	// Everything else still comes from the new package
	_, err = os.Stat(filepath.Join(f.cfg.ImporterPath(f.appRoot), "Mods", "README.txt"))
	assert.NoError(t, err)
}

func TestInstall_BackupSessionHoldsOldIni(t *testing.T) {
	f := newInstallerFixture(t)

	require.NoError(t, f.installer.InstallLatestVersion(context.Background(), f.cfg, f.downloaded))

	backed, err := os.ReadFile(filepath.Join(f.vault.SessionPath(), "d3dx.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(backed), "old.exe")
}

func TestInstall_FirstInstallWithoutExistingIni(t *testing.T) {
	f := newInstallerFixture(t)
	require.NoError(t, os.RemoveAll(f.cfg.ImporterPath(f.appRoot)))
	f.cfg.OverwriteIni = false

	require.NoError(t, f.installer.InstallLatestVersion(context.Background(), f.cfg, f.downloaded))

	// Nothing to back up and nothing to restore: the shipped ini stays
	data, err := os.ReadFile(f.cfg.IniPath(f.appRoot))
	require.NoError(t, err)
	assert.Contains(t, string(data), "new.exe")
}

func TestInstall_CancelledContext(t *testing.T) {
	f := newInstallerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.installer.InstallLatestVersion(ctx, f.cfg, f.downloaded)
	assert.ErrorIs(t, err, context.Canceled)
}
