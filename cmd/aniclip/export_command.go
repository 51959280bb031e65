package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aniclip/internal/snapshot"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var path string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the database to a SQLite snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(path)
			if target == "" {
				target = cfg.Export.SQLitePath
			}
			summary, err := snapshot.Export(cmd.Context(), db, target)
			if err != nil {
				return fmt.Errorf("export snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported snapshot %s to %s\n", summary.ExportID, target)
			writeSummary(cmd, summary)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&path, "path", "p", "", "Snapshot file (default export.sqlite_path)")
	exportCmd.AddCommand(newExportInspectCommand(ctx))
	return exportCmd
}

func newExportInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [snapshot]",
		Short: "Verify a snapshot and show its row counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := cfg.Export.SQLitePath
			if len(args) == 1 {
				target = args[0]
			}
			summary, err := snapshot.Inspect(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("inspect snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s exported %s\n",
				summary.ExportID, summary.ExportedAt.Local().Format(time.DateTime))
			writeSummary(cmd, summary)
			return nil
		},
	}
}

func writeSummary(cmd *cobra.Command, summary snapshot.Summary) {
	rows := [][]string{
		{"shows", strconv.Itoa(summary.Shows)},
		{"clips", strconv.Itoa(summary.Clips)},
		{"clip_tags", strconv.Itoa(summary.ClipTags)},
		{"lists", strconv.Itoa(summary.Lists)},
		{"list_clips", strconv.Itoa(summary.ListEntries)},
		{"tag_groups", strconv.Itoa(summary.TagGroups)},
		{"group_tags", strconv.Itoa(summary.Tags)},
	}
	writeTable(cmd, []string{"Table", "Rows"}, rows, []columnAlignment{alignLeft, alignRight})
}
