package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupsAll bool

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List recorded backup sessions",
	Long: `Shows the backup sessions taken before installs, newest first. By
default only the selected importer's sessions are shown.`,
	RunE: runBackups,
}

func init() {
	backupsCmd.Flags().BoolVarP(&backupsAll, "all", "a", false, "list sessions for every importer")
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	svc, queue, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()
	defer queue.Close()

	packageName := ""
	if !backupsAll {
		cfg, err := svc.Importer(importerName)
		if err != nil {
			return err
		}
		packageName = cfg.PackageName
	}

	sessions, err := svc.DB().ListBackupSessions(packageName)
	if err != nil {
		return fmt.Errorf("reading backup sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No backup sessions recorded.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%s  %-6s  %d file(s)  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04:05"), s.PackageName, s.FileCount, s.SessionPath)
	}
	return nil
}
