package main

import (
	"fmt"
	"os"

	"milaunch/internal/core"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show importer configuration and recent launches",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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
	integ, err := svc.Integration(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Importer:     %s (%s)\n", cfg.PackageName, integ.Name())
	fmt.Printf("Install path: %s\n", cfg.ImporterPath(svc.AppRoot()))

	iniPath := cfg.IniPath(svc.AppRoot())
	if _, err := os.Stat(iniPath); err == nil {
		fmt.Printf("d3dx.ini:     %s\n", colorGreen("present"))
	} else {
		fmt.Printf("d3dx.ini:     %s\n", colorRed("missing"))
	}

	if cfg.GameFolder == "" {
		fmt.Printf("Game folder:  %s\n", colorYellow("not configured"))
	} else if validated, err := core.ValidateGamePath(cfg.GameFolder); err == nil {
		fmt.Printf("Game folder:  %s %s\n", validated, colorGreen("(valid)"))
	} else {
		fmt.Printf("Game folder:  %s %s\n", cfg.GameFolder, colorRed("(invalid)"))
	}

	launches, err := svc.DB().RecentLaunches(cfg.PackageName, 5)
	if err != nil {
		return fmt.Errorf("reading launch history: %w", err)
	}
	if len(launches) == 0 {
		fmt.Println("\nNo recorded launches.")
		return nil
	}
	fmt.Println("\nRecent launches:")
	for _, l := range launches {
		line := fmt.Sprintf("  %s  %s", l.LaunchedAt.Format("2006-01-02 15:04:05"), l.Outcome)
		if l.ExePath != "" {
			line += "  " + l.ExePath
		}
		fmt.Println(line)
	}
	return nil
}
