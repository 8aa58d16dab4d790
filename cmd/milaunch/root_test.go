package main

import (
	"os"
	"path/filepath"
	"testing"

	"milaunch/internal/domain"
	"milaunch/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitService_EmptyConfig(t *testing.T) {
	// Use temp directories to avoid polluting real config
	configDir = t.TempDir()
	dataDir = t.TempDir()

	svc, queue, err := initService()
	require.NoError(t, err)
	t.Cleanup(func() {
		queue.Close()
		require.NoError(t, svc.Close())
	})

	// Nothing configured yet: resolving the active importer must fail
	_, err = svc.Importer("")
	assert.Error(t, err)

	// Bundled game integrations are always available
	launches, err := svc.DB().RecentLaunches("WWMI", 5)
	require.NoError(t, err)
	assert.Empty(t, launches)
}

func TestInitService_WarmsUpActiveImporter(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	t.Cleanup(func() {
		configDir = ""
		dataDir = ""
	})
	t.Setenv("HOME", t.TempDir())

	// Fake Steam root with Wuthering Waves installed
	steamRoot := t.TempDir()
	steamapps := filepath.Join(steamRoot, "steamapps")
	install := filepath.Join(steamapps, "common", "Wuthering Waves")
	require.NoError(t, os.MkdirAll(install, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(install, "Wuthering Waves.exe"), []byte("exe"), 0755))
	manifest := `"AppState"
{
	"appid"		"3513350"
	"name"		"Wuthering Waves"
	"installdir"		"Wuthering Waves"
}
`
	require.NoError(t, os.WriteFile(
		filepath.Join(steamapps, "appmanifest_3513350.acf"), []byte(manifest), 0644))
	t.Setenv("STEAM_ROOT", steamRoot)

	appCfg := &config.Config{ActiveImporter: "WWMI"}
	require.NoError(t, appCfg.Save(configDir))
	require.NoError(t, config.SaveImporter(configDir, &domain.ImporterConfig{
		PackageName:    "WWMI",
		ImporterFolder: "WWMI",
		GameFolder:     "stale/relative",
	}))

	svc, queue, err := initService()
	require.NoError(t, err)
	t.Cleanup(func() {
		queue.Close()
		require.NoError(t, svc.Close())
	})

	// The stale game folder was replaced by the detected install and
	// written back, so the next run starts from the good path.
	importers, err := config.LoadImporters(configDir)
	require.NoError(t, err)
	require.Contains(t, importers, "WWMI")
	assert.Equal(t, install, importers["WWMI"].GameFolder)
}

func TestGetServiceConfig_FlagsWin(t *testing.T) {
	configDir = "/tmp/custom-config"
	dataDir = "/tmp/custom-data"
	t.Cleanup(func() {
		configDir = ""
		dataDir = ""
	})

	cfg, err := getServiceConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-config", cfg.ConfigDir)
	assert.Equal(t, "/tmp/custom-data", cfg.DataDir)
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "milaunch", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	for _, name := range []string{"launch", "install", "validate", "detect", "shortcut", "status", "backups"} {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %s should be registered", name)
	}
}
