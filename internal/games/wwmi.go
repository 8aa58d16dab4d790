package games

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"milaunch/internal/ini"
)

// engineIniRel is the Unreal Engine config file WWMI tweaks before launch.
const engineIniRel = "Client/Saved/Config/WindowsNoEditor/Engine.ini"

// engineTweaks keeps mesh LODs stable so modded models do not swap out
// at distance, and caps shader streaming behavior the importer relies on.
var engineTweaks = map[string]string{
	"r.Kuro.SkeletalMesh.LODDistanceScale": "24",
	"r.Streaming.FullyLoadUsedTextures":    "1",
	"r.XGEShaderCompile":                   "0",
}

// WWMI is the Wuthering Waves integration. On top of the shared
// detection logic it writes Engine.ini tweaks as launch preparation.
type WWMI struct {
	*base
}

// PreLaunch applies the Engine.ini tweaks under the resolved game path.
// The file is created when the game has not generated it yet.
func (w *WWMI) PreLaunch(ctx context.Context, gamePath string) error {
	iniPath := filepath.Join(gamePath, filepath.FromSlash(engineIniRel))

	if err := os.MkdirAll(filepath.Dir(iniPath), 0755); err != nil {
		return fmt.Errorf("creating engine config dir: %w", err)
	}
	if _, err := os.Stat(iniPath); os.IsNotExist(err) {
		if err := os.WriteFile(iniPath, nil, 0644); err != nil {
			return fmt.Errorf("creating %s: %w", iniPath, err)
		}
	}

	doc, err := ini.Load(iniPath)
	if err != nil {
		return fmt.Errorf("loading engine config: %w", err)
	}
	for option, value := range engineTweaks {
		if err := doc.Set("SystemSettings", option, value); err != nil {
			return fmt.Errorf("applying engine tweak %s: %w", option, err)
		}
	}
	if !doc.Modified() {
		return nil
	}
	if err := doc.Save(); err != nil {
		return fmt.Errorf("saving engine config: %w", err)
	}
	return nil
}
