package games

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"milaunch/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/known-games.yaml
var defaultGamesFS embed.FS

const defaultGamesPath = "data/known-games.yaml"

// Registry holds the configured integrations keyed by importer package name
type Registry struct {
	integrations map[string]Integration
}

// NewRegistry builds integrations from the embedded known-games table,
// merged with configDir/known-games.yaml if present (so detection data
// can be adjusted without rebuilding).
func NewRegistry(configDir string) (*Registry, error) {
	specs, err := loadSpecs(configDir)
	if err != nil {
		return nil, err
	}

	integrations := make(map[string]Integration, len(specs))
	for id, spec := range specs {
		b := &base{id: id, spec: spec}
		switch id {
		case "WWMI":
			// Wuthering Waves needs Engine.ini tweaks before injection
			integrations[id] = &WWMI{base: b}
		default:
			integrations[id] = b
		}
	}
	return &Registry{integrations: integrations}, nil
}

// Get returns the integration for an importer package name
func (r *Registry) Get(id string) (Integration, error) {
	integ, ok := r.integrations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrGameNotFound, id)
	}
	return integ, nil
}

// All returns every integration sorted by ID
func (r *Registry) All() []Integration {
	out := make([]Integration, 0, len(r.integrations))
	for _, integ := range r.integrations {
		out = append(out, integ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// loadSpecs reads the embedded games table and merges user overrides.
func loadSpecs(configDir string) (map[string]GameSpec, error) {
	data, err := defaultGamesFS.ReadFile(defaultGamesPath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded known-games: %w", err)
	}
	specs := make(map[string]GameSpec)
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing embedded known-games: %w", err)
	}

	if configDir == "" {
		return specs, nil
	}
	overridePath := filepath.Join(configDir, "known-games.yaml")
	overrideData, err := os.ReadFile(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return specs, nil
		}
		return nil, fmt.Errorf("reading %s: %w", overridePath, err)
	}
	overrides := make(map[string]GameSpec)
	if err := yaml.Unmarshal(overrideData, &overrides); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", overridePath, err)
	}
	for id, spec := range overrides {
		specs[id] = spec
	}
	return specs, nil
}
