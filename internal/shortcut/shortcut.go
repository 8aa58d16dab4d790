// Package shortcut creates a desktop launch shortcut that starts the
// game through the active importer without opening the launcher UI.
package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options describe the shortcut to create
type Options struct {
	Importer   string // Importer package name, e.g. "WWMI"
	ExePath    string // Launcher binary the shortcut points at
	WorkingDir string // Application root
	IconPath   string // Icon from the active theme, may be empty
	DesktopDir string // Target directory; empty uses ~/Desktop
}

// Create writes a .desktop entry and returns its path.
func Create(opts Options) (string, error) {
	if opts.Importer == "" {
		return "", fmt.Errorf("shortcut needs an importer name")
	}

	desktopDir := opts.DesktopDir
	if desktopDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		desktopDir = filepath.Join(home, "Desktop")
	}
	if err := os.MkdirAll(desktopDir, 0755); err != nil {
		return "", fmt.Errorf("creating desktop dir: %w", err)
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s Quick Start\n", opts.Importer)
	fmt.Fprintf(&b, "Comment=Start game with %s and skip launcher load\n", opts.Importer)
	fmt.Fprintf(&b, "Exec=%q launch --no-gui -i %s\n", opts.ExePath, opts.Importer)
	if opts.WorkingDir != "" {
		fmt.Fprintf(&b, "Path=%s\n", opts.WorkingDir)
	}
	if opts.IconPath != "" {
		fmt.Fprintf(&b, "Icon=%s\n", opts.IconPath)
	}
	b.WriteString("Terminal=false\n")
	b.WriteString("Categories=Game;\n")

	path := filepath.Join(desktopDir, opts.Importer+" Quick Start.desktop")
	if err := os.WriteFile(path, []byte(b.String()), 0755); err != nil {
		return "", fmt.Errorf("writing shortcut: %w", err)
	}
	return path, nil
}
