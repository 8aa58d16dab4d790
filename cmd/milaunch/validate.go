package main

import (
	"fmt"

	"milaunch/internal/core"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a game folder path",
	Long: `Checks that a game folder path is absolute, exists, and is a directory.
With no argument, validates the configured game folder of the importer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		svc, queue, err := initService()
		if err != nil {
			return err
		}
		cfg, err := svc.Importer(importerName)
		queue.Close()
		svc.Close()
		if err != nil {
			return err
		}
		path = cfg.GameFolder
	}

	validated, err := core.ValidateGamePath(path)
	if err != nil {
		fmt.Printf("%s %v\n", colorRed("invalid:"), err)
		return ErrCancelled
	}
	fmt.Printf("%s %s\n", colorGreen("valid:"), validated)
	return nil
}
