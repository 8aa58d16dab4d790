// Package steam locates game installations inside Steam libraries. It is
// one of the autodetection heuristics used when a configured game folder
// fails validation.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindSteamRoots returns candidate Steam installation roots in search order.
func FindSteamRoots() []string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
	}
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	var out []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetLibraryPaths returns all Steam library paths from a Steam root
// (reading libraryfolders.vdf).
func GetLibraryPaths(steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Single library: the steam root itself is the library
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	root, err := ParseVDF(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPathsFromVDF(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// FindApp scans every Steam library for the given App ID and returns the
// game's install directory. The second return value is false when the app
// is not installed in any library.
func FindApp(appID string) (string, bool) {
	if appID == "" {
		return "", false
	}
	for _, steamRoot := range FindSteamRoots() {
		libraries, err := GetLibraryPaths(steamRoot)
		if err != nil {
			continue
		}
		for _, libPath := range libraries {
			manifestPath := filepath.Join(libPath, "steamapps", "appmanifest_"+appID+".acf")
			data, err := os.ReadFile(manifestPath)
			if err != nil {
				continue
			}
			manifest, err := ParseAppManifest(string(data))
			if err != nil || manifest.InstallDir == "" {
				continue
			}
			installPath := filepath.Join(libPath, "steamapps", "common", manifest.InstallDir)
			if info, err := os.Stat(installPath); err == nil && info.IsDir() {
				return installPath, true
			}
		}
	}
	return "", false
}
