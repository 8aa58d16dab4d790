package core

import (
	"testing"

	"milaunch/internal/domain"
	"milaunch/internal/events"
	"milaunch/internal/storage/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	configDir := t.TempDir()
	dataDir := t.TempDir()

	appConfig := &config.Config{ActiveImporter: "WWMI"}
	require.NoError(t, appConfig.Save(configDir))
	require.NoError(t, config.SaveImporter(configDir, &domain.ImporterConfig{
		PackageName:    "WWMI",
		ImporterFolder: "WWMI",
	}))

	svc, err := NewService(ServiceConfig{
		ConfigDir: configDir,
		DataDir:   dataDir,
	}, &events.Recorder{}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, configDir
}

func TestService_ImporterResolution(t *testing.T) {
	svc, _ := newTestService(t)

	// Explicit name
	cfg, err := svc.Importer("WWMI")
	require.NoError(t, err)
	assert.Equal(t, "WWMI", cfg.PackageName)

	// Falls back to the active importer
	cfg, err = svc.Importer("")
	require.NoError(t, err)
	assert.Equal(t, "WWMI", cfg.PackageName)

	_, err = svc.Importer("GIMI")
	assert.Error(t, err)
}

func TestService_LauncherForKnownImporter(t *testing.T) {
	svc, _ := newTestService(t)

	launcher, err := svc.Launcher("WWMI")
	require.NoError(t, err)
	assert.NotNil(t, launcher)
}

func TestService_LauncherUnknownIntegration(t *testing.T) {
	_, configDir := newTestService(t)
	require.NoError(t, config.SaveImporter(configDir, &domain.ImporterConfig{
		PackageName: "NOPE",
	}))

	// Importer configs are loaded at service start; rebuild the service
	fresh, err := NewService(ServiceConfig{
		ConfigDir: configDir,
		DataDir:   t.TempDir(),
	}, &events.Recorder{}, zerolog.Nop())
	require.NoError(t, err)
	defer fresh.Close()

	_, err = fresh.Launcher("NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestService_WarmUpActiveSurvivesMissingConfig(t *testing.T) {
	svc, err := NewService(ServiceConfig{
		ConfigDir: t.TempDir(),
		DataDir:   t.TempDir(),
	}, &events.Recorder{}, zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	assert.NotPanics(t, func() { svc.WarmUpActive() })
}
