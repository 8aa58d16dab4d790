// Package games holds one integration per supported model importer. An
// integration knows how to find its game's executable, how to discover
// the game folder when configuration is stale, and what game-specific
// preparation must run before injection.
package games

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"milaunch/internal/source/steam"
)

// Integration is the per-game capability set used by the launch sequence
type Integration interface {
	// ID is the importer package name, e.g. "WWMI"
	ID() string
	// Name is the game's display name
	Name() string
	// LocateExecutable finds the game executable under a validated game folder
	LocateExecutable(gamePath string) (string, error)
	// AutodetectFolder discovers the game installation folder heuristically
	AutodetectFolder() (string, error)
	// PreLaunch runs game-specific preparation against the resolved game path
	PreLaunch(ctx context.Context, gamePath string) error
}

// GameSpec is one entry of the known-games table
type GameSpec struct {
	Name       string   `yaml:"name"`
	SteamAppID string   `yaml:"steam_appid"`
	ExeNames   []string `yaml:"exe_names"`   // Relative to the game folder, first match wins
	KnownPaths []string `yaml:"known_paths"` // Candidate install folders, ~ expands to $HOME
}

// base implements Integration from a GameSpec. Games without special
// launch preparation use it directly.
type base struct {
	id   string
	spec GameSpec
}

func (b *base) ID() string   { return b.id }
func (b *base) Name() string { return b.spec.Name }

// LocateExecutable probes the spec's executable candidates in order.
func (b *base) LocateExecutable(gamePath string) (string, error) {
	for _, rel := range b.spec.ExeNames {
		exePath := filepath.Join(gamePath, filepath.FromSlash(rel))
		info, err := os.Stat(exePath)
		if err != nil || info.IsDir() {
			continue
		}
		return exePath, nil
	}
	return "", fmt.Errorf("no %s executable found under %s (tried %s)",
		b.spec.Name, gamePath, strings.Join(b.spec.ExeNames, ", "))
}

// AutodetectFolder tries the Steam libraries first, then the known
// install locations from the games table.
func (b *base) AutodetectFolder() (string, error) {
	if path, ok := steam.FindApp(b.spec.SteamAppID); ok {
		return path, nil
	}
	home, _ := os.UserHomeDir()
	for _, candidate := range b.spec.KnownPaths {
		if strings.HasPrefix(candidate, "~/") {
			candidate = filepath.Join(home, candidate[2:])
		}
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("could not autodetect %s installation", b.spec.Name)
}

func (b *base) PreLaunch(ctx context.Context, gamePath string) error {
	return nil
}
