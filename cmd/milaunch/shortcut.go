package main

import (
	"fmt"
	"os"
	"path/filepath"

	"milaunch/internal/shortcut"

	"github.com/spf13/cobra"
)

var shortcutDir string

var shortcutCmd = &cobra.Command{
	Use:   "shortcut",
	Short: "Create a desktop quick-start shortcut",
	Long: `Writes a .desktop entry that launches the game through the importer
directly, skipping the launcher UI.`,
	RunE: runShortcut,
}

func init() {
	shortcutCmd.Flags().StringVar(&shortcutDir, "dir", "", "directory for the shortcut (default: ~/Desktop)")
	rootCmd.AddCommand(shortcutCmd)
}

func runShortcut(cmd *cobra.Command, args []string) error {
	svc, queue, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()
	defer queue.Close()

	cfg, err := svc.Importer(importerName)
	if err != nil {
		return err
	}

	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving launcher binary: %w", err)
	}

	themesRoot := svc.Config().ThemesPath
	if themesRoot == "" {
		serviceCfg, err := getServiceConfig()
		if err != nil {
			return err
		}
		themesRoot = filepath.Join(serviceCfg.DataDir, "themes")
	}
	iconPath := filepath.Join(cfg.ThemePath(themesRoot), "icon.png")
	if _, err := os.Stat(iconPath); err != nil {
		iconPath = ""
	}

	path, err := shortcut.Create(shortcut.Options{
		Importer:   cfg.PackageName,
		ExePath:    exePath,
		WorkingDir: svc.AppRoot(),
		IconPath:   iconPath,
		DesktopDir: shortcutDir,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", colorGreen("created:"), path)
	return nil
}
