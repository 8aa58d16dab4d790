package games

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"milaunch/internal/ini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWWMI_PreLaunchCreatesEngineIni(t *testing.T) {
	gameDir := t.TempDir()
	w := &WWMI{base: &base{id: "WWMI", spec: GameSpec{Name: "Wuthering Waves"}}}

	require.NoError(t, w.PreLaunch(context.Background(), gameDir))

	iniPath := filepath.Join(gameDir, filepath.FromSlash(engineIniRel))
	doc, err := ini.Load(iniPath)
	require.NoError(t, err)

	v, ok := doc.Get("SystemSettings", "r.Kuro.SkeletalMesh.LODDistanceScale")
	assert.True(t, ok)
	assert.Equal(t, "24", v)
}

func TestWWMI_PreLaunchKeepsExistingSettings(t *testing.T) {
	gameDir := t.TempDir()
	iniPath := filepath.Join(gameDir, filepath.FromSlash(engineIniRel))
	require.NoError(t, os.MkdirAll(filepath.Dir(iniPath), 0755))
	existing := "[Core]\n; user setting\nLogTimes = 1\n"
	require.NoError(t, os.WriteFile(iniPath, []byte(existing), 0644))

	w := &WWMI{base: &base{id: "WWMI", spec: GameSpec{Name: "Wuthering Waves"}}}
	require.NoError(t, w.PreLaunch(context.Background(), gameDir))

	doc, err := ini.Load(iniPath)
	require.NoError(t, err)
	v, ok := doc.Get("Core", "LogTimes")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestWWMI_PreLaunchIdempotent(t *testing.T) {
	gameDir := t.TempDir()
	w := &WWMI{base: &base{id: "WWMI", spec: GameSpec{Name: "Wuthering Waves"}}}

	require.NoError(t, w.PreLaunch(context.Background(), gameDir))

	iniPath := filepath.Join(gameDir, filepath.FromSlash(engineIniRel))
	first, err := os.ReadFile(iniPath)
	require.NoError(t, err)

	require.NoError(t, w.PreLaunch(context.Background(), gameDir))
	second, err := os.ReadFile(iniPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
