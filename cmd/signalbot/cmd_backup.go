package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wagner-austin/signal-bot/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list, and restore database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		path, err := store.NewBackupManager(s, cfg.Backup.RetentionCount).Create()
		if err != nil {
			return err
		}
		fmt.Println("Backup created:", path)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		names := store.NewBackupManager(s, cfg.Backup.RetentionCount).List()
		if len(names) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := store.NewBackupManager(s, cfg.Backup.RetentionCount).Restore(args[0]); err != nil {
			return err
		}
		fmt.Println("Database restored from", args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
