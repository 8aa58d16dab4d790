package ini

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIni = `; 3dmigoto main configuration
[Loader]
loader = XXMI Launcher.exe
; delay injection until the game window exists
wait_for_target = 1

[Logging]
calls = 0
debug = 0
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "d3dx.ini")
	require.NoError(t, os.WriteFile(path, []byte(sampleIni), 0644))
	return path
}

func TestDocument_Get(t *testing.T) {
	doc, err := Load(writeSample(t))
	require.NoError(t, err)

	v, ok := doc.Get("Loader", "loader")
	assert.True(t, ok)
	assert.Equal(t, "XXMI Launcher.exe", v)

	_, ok = doc.Get("Loader", "missing")
	assert.False(t, ok)

	_, ok = doc.Get("NoSuchSection", "loader")
	assert.False(t, ok)
}

func TestDocument_SetTracksModification(t *testing.T) {
	doc, err := Load(writeSample(t))
	require.NoError(t, err)
	assert.False(t, doc.Modified())

	// Writing the value already present must not mark the document dirty
	require.NoError(t, doc.Set("Logging", "calls", "0"))
	assert.False(t, doc.Modified())

	require.NoError(t, doc.Set("Logging", "calls", "1"))
	assert.True(t, doc.Modified())
}

func TestDocument_SetCreatesSectionAndKey(t *testing.T) {
	doc, err := Load(writeSample(t))
	require.NoError(t, err)

	require.NoError(t, doc.Set("Hunting", "hunting", "2"))
	assert.True(t, doc.Modified())

	v, ok := doc.Get("Hunting", "hunting")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestDocument_SaveUsesSpacedDelimiter(t *testing.T) {
	path := writeSample(t)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.Set("Logging", "calls", "1"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// The file is shared with the injector: `option = value`, never `option=value`
	assert.Contains(t, string(data), "calls = 1")
	assert.NotContains(t, string(data), "calls=1")
	assert.Contains(t, string(data), "loader = XXMI Launcher.exe")
}

func TestDocument_SavePreservesCommandListLines(t *testing.T) {
	content := `[Logging]
calls = 0

[TextureOverrideSwap]
if $swapvar == 1
	run = CommandListA
endif
`
	path := filepath.Join(t.TempDir(), "d3dx.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.Set("Logging", "calls", "1"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flow control in untouched sections survives byte for byte
	assert.Contains(t, string(data), "if $swapvar == 1\n")
	assert.Contains(t, string(data), "\trun = CommandListA\n")
	assert.Contains(t, string(data), "endif\n")
	assert.Contains(t, string(data), "calls = 1")
}

func TestDocument_SaveOnlyTouchesEditedLines(t *testing.T) {
	path := writeSample(t)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.Set("Logging", "debug", "1"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// The single edit is the only difference to the original content
	want := strings.Replace(sampleIni, "debug = 0", "debug = 1", 1)
	assert.Equal(t, want, string(data))
}

func TestDocument_SaveCreatesSectionInEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Engine.ini")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.Set("SystemSettings", "r.Streaming.FullyLoadUsedTextures", "1"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[SystemSettings]\nr.Streaming.FullyLoadUsedTextures = 1\n")
}

func TestDocument_SaveRoundTripKeepsComments(t *testing.T) {
	path := writeSample(t)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.Set("Logging", "debug", "1"))
	require.NoError(t, doc.Save())
	assert.False(t, doc.Modified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3dmigoto main configuration")
	assert.Contains(t, string(data), "delay injection until the game window exists")

	reloaded, err := Load(path)
	require.NoError(t, err)
	v, ok := reloaded.Get("Logging", "debug")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
