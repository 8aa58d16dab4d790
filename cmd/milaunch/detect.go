package main

import (
	"fmt"

	"milaunch/internal/storage/config"

	"github.com/spf13/cobra"
)

var detectSave bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Autodetect the game folder for an importer",
	Long: `Searches Steam libraries and known install locations for the importer's
game. With --save the detected folder is written to importers.yaml.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectSave, "save", false, "persist the detected folder to the importer config")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
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

	folder, err := integ.AutodetectFolder()
	if err != nil {
		return fmt.Errorf("autodetecting %s folder: %w", integ.Name(), err)
	}
	fmt.Printf("%s %s\n", colorGreen("detected:"), folder)

	if exe, err := integ.LocateExecutable(folder); err == nil {
		fmt.Printf("executable: %s\n", exe)
	} else {
		fmt.Println(colorYellow("warning: no game executable found in the detected folder"))
	}

	if detectSave {
		cfg.GameFolder = folder
		serviceCfg, err := getServiceConfig()
		if err != nil {
			return err
		}
		if err := config.SaveImporter(serviceCfg.ConfigDir, cfg); err != nil {
			return fmt.Errorf("saving importer config: %w", err)
		}
		fmt.Println("saved to importers.yaml")
	}
	return nil
}
