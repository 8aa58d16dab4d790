package core

import (
	"fmt"
	"os"
	"path/filepath"

	"milaunch/internal/domain"
)

// ValidateGamePath checks that pathStr plausibly points at a game
// installation directory and returns it cleaned. Checks run in order:
// absolute, exists, is a directory - a relative path fails before any
// filesystem access.
func ValidateGamePath(pathStr string) (string, error) {
	if !filepath.IsAbs(pathStr) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPath, pathStr)
	}
	info, err := os.Stat(pathStr)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", domain.ErrPathNotFound, pathStr)
		}
		return "", fmt.Errorf("checking %q: %w", pathStr, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q", domain.ErrNotADirectory, pathStr)
	}
	return filepath.Clean(pathStr), nil
}
