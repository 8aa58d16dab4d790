package core

import (
	"os"
	"path/filepath"
	"testing"

	"milaunch/internal/domain"
	"milaunch/internal/ini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDoc(t *testing.T, content string) *ini.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "d3dx.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	doc, err := ini.Load(path)
	require.NoError(t, err)
	return doc
}

func TestProjector_Constant(t *testing.T) {
	settings := domain.D3DXSettings{
		"core": {
			"Loader": {
				"loader": {Literal: "loader.dll"},
			},
		},
	}
	doc := newTestDoc(t, "[Loader]\nloader = old.dll\n")

	p := NewProjector(settings)
	require.NoError(t, p.ProjectConstant(doc, "core"))

	v, ok := doc.Get("Loader", "loader")
	assert.True(t, ok)
	assert.Equal(t, "loader.dll", v)
	assert.True(t, doc.Modified())
}

func TestProjector_BoolBranches(t *testing.T) {
	settings := domain.D3DXSettings{
		"debug_logging": {
			"Logging": {
				"calls": {Choices: map[string]string{"on": "1", "off": "0"}},
			},
		},
	}

	doc := newTestDoc(t, "[Logging]\ncalls = 0\n")
	p := NewProjector(settings)

	require.NoError(t, p.ProjectBool(doc, "debug_logging", true))
	v, _ := doc.Get("Logging", "calls")
	assert.Equal(t, "1", v)

	require.NoError(t, p.ProjectBool(doc, "debug_logging", false))
	v, _ = doc.Get("Logging", "calls")
	assert.Equal(t, "0", v)
}

func TestProjector_MapDiscriminator(t *testing.T) {
	settings := domain.D3DXSettings{
		"texture_quality": {
			"Rendering": {
				"texture_hash": {Choices: map[string]string{"low": "0", "high": "1"}},
			},
		},
	}
	doc := newTestDoc(t, "[Rendering]\ntexture_hash = 0\n")
	p := NewProjector(settings)

	require.NoError(t, p.ProjectMap(doc, "texture_quality", "high"))
	v, _ := doc.Get("Rendering", "texture_hash")
	assert.Equal(t, "1", v)
}

func TestProjector_MissingSetting(t *testing.T) {
	doc := newTestDoc(t, "")
	p := NewProjector(domain.D3DXSettings{})

	err := p.ProjectConstant(doc, "core")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingSetting)
	assert.Contains(t, err.Error(), "core")
}

func TestProjector_MissingSettingValue(t *testing.T) {
	settings := domain.D3DXSettings{
		"enable_hunting": {
			"Hunting": {
				"hunting": {Choices: map[string]string{"on": "2"}}, // no "off" branch
			},
		},
	}
	doc := newTestDoc(t, "[Hunting]\nhunting = 2\n")
	p := NewProjector(settings)

	err := p.ProjectBool(doc, "enable_hunting", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingSettingValue)
	assert.Contains(t, err.Error(), "Hunting")
	assert.Contains(t, err.Error(), "hunting")
	assert.Contains(t, err.Error(), "off")
}

func TestProjector_UnchangedWriteLeavesDocumentClean(t *testing.T) {
	settings := domain.D3DXSettings{
		"mute_warnings": {
			"Logging": {
				"show_warnings": {Choices: map[string]string{"on": "0", "off": "1"}},
			},
		},
	}
	doc := newTestDoc(t, "[Logging]\nshow_warnings = 1\n")
	p := NewProjector(settings)

	require.NoError(t, p.ProjectBool(doc, "mute_warnings", false))
	assert.False(t, doc.Modified())
}
