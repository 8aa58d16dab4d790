package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package-dir>",
	Short: "Install an unpacked importer package",
	Long: `Moves the contents of an unpacked package directory over the importer's
install folder. The existing d3dx.ini is backed up first and restored
afterwards unless the importer is configured to overwrite it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	packageDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving package path: %w", err)
	}
	info, err := os.Stat(packageDir)
	if err != nil {
		return fmt.Errorf("package directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", packageDir)
	}

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

	if err := svc.Installer().InstallLatestVersion(cmd.Context(), cfg, packageDir); err != nil {
		return err
	}

	fmt.Printf("%s installed to %s\n", colorGreen(cfg.PackageName), cfg.ImporterPath(svc.AppRoot()))
	return nil
}
