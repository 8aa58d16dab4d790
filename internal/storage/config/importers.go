package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"milaunch/internal/domain"

	"gopkg.in/yaml.v3"
)

// ImportersFile is the top-level importers.yaml structure
type ImportersFile struct {
	Importers map[string]domain.ImporterConfig `yaml:"importers"`
}

// LoadImporters reads all importer configurations. Package-provided
// defaults (importer-defaults.yaml, written at install time) sit under
// user settings: the user file wins per field, and d3dx_ini tables merge
// per setting name.
func LoadImporters(configDir string) (map[string]*domain.ImporterConfig, error) {
	defaults, err := readImportersFile(filepath.Join(configDir, "importer-defaults.yaml"))
	if err != nil {
		return nil, err
	}
	users, err := readImportersFile(filepath.Join(configDir, "importers.yaml"))
	if err != nil {
		return nil, err
	}

	out := make(map[string]*domain.ImporterConfig, len(users))
	for name, def := range defaults {
		cfg := def
		out[name] = &cfg
	}
	for name, user := range users {
		if def, ok := out[name]; ok {
			merged := mergeImporter(*def, user)
			out[name] = &merged
			continue
		}
		cfg := user
		out[name] = &cfg
	}
	// The map key is authoritative when an entry omits package_name
	for name, cfg := range out {
		if cfg.PackageName == "" {
			cfg.PackageName = name
		}
	}
	return out, nil
}

// SaveImporter adds or updates one importer in importers.yaml
func SaveImporter(configDir string, cfg *domain.ImporterConfig) error {
	path := filepath.Join(configDir, "importers.yaml")
	importers, err := readImportersFile(path)
	if err != nil {
		return err
	}
	if importers == nil {
		importers = make(map[string]domain.ImporterConfig)
	}
	importers[cfg.PackageName] = *cfg

	data, err := yaml.Marshal(ImportersFile{Importers: importers})
	if err != nil {
		return fmt.Errorf("marshaling importers: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing importers.yaml: %w", err)
	}
	return nil
}

// SaveImporterDefaults writes the package-provided defaults file. Called
// by the installer when a package ships a new d3dx_ini table.
func SaveImporterDefaults(configDir string, cfg *domain.ImporterConfig) error {
	path := filepath.Join(configDir, "importer-defaults.yaml")
	importers, err := readImportersFile(path)
	if err != nil {
		return err
	}
	if importers == nil {
		importers = make(map[string]domain.ImporterConfig)
	}
	importers[cfg.PackageName] = *cfg

	data, err := yaml.Marshal(ImportersFile{Importers: importers})
	if err != nil {
		return fmt.Errorf("marshaling importer defaults: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing importer-defaults.yaml: %w", err)
	}
	return nil
}

func readImportersFile(path string) (map[string]domain.ImporterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var file ImportersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file.Importers, nil
}

// mergeImporter lays user settings over package defaults. Scalar fields
// from the user win when set; d3dx_ini merges per setting name so user
// overrides do not have to repeat the whole table.
func mergeImporter(def, user domain.ImporterConfig) domain.ImporterConfig {
	merged := def
	if user.PackageName != "" {
		merged.PackageName = user.PackageName
	}
	if user.ImporterFolder != "" {
		merged.ImporterFolder = user.ImporterFolder
	}
	if user.GameFolder != "" {
		merged.GameFolder = user.GameFolder
	}
	if user.LauncherTheme != "" {
		merged.LauncherTheme = user.LauncherTheme
	}
	merged.OverwriteIni = user.OverwriteIni
	if !user.PreLaunch.IsEmpty() {
		merged.PreLaunch = user.PreLaunch
	}
	if !user.PostLoad.IsEmpty() {
		merged.PostLoad = user.PostLoad
	}
	if len(user.D3DXIni) > 0 {
		if merged.D3DXIni == nil {
			merged.D3DXIni = make(domain.D3DXSettings, len(user.D3DXIni))
		} else {
			copied := make(domain.D3DXSettings, len(merged.D3DXIni)+len(user.D3DXIni))
			for name, sections := range merged.D3DXIni {
				copied[name] = sections
			}
			merged.D3DXIni = copied
		}
		for name, sections := range user.D3DXIni {
			merged.D3DXIni[name] = sections
		}
	}
	return merged
}
