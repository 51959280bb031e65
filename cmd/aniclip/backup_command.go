package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Save the database and back up the data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Backup.Enabled {
				return fmt.Errorf("backups are disabled (set backup.enabled = true)")
			}
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			result, err := db.Save()
			if err != nil {
				return fmt.Errorf("save database: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backup written to %s\n", result.BackupDir)
			if len(result.PrunedBackups) > 0 {
				fmt.Fprintf(out, "Pruned %d old backups\n", len(result.PrunedBackups))
			}
			return nil
		},
	}
	backupCmd.AddCommand(newBackupListCommand(ctx))
	return backupCmd
}

func newBackupListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List backup directories, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			backups, err := db.Backups()
			if err != nil {
				return fmt.Errorf("list backups: %w", err)
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups")
				return nil
			}
			rows := make([][]string, 0, len(backups))
			for _, dir := range backups {
				modified := ""
				if info, err := os.Stat(dir); err == nil {
					modified = info.ModTime().Format(time.DateTime)
				}
				rows = append(rows, []string{filepath.Base(dir), modified})
			}
			writeTable(cmd, []string{"Backup", "Written"}, rows, nil)
			return nil
		},
	}
}
