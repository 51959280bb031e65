package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize the clip database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			stats := db.Stats()
			if jsonOutput {
				return writeJSON(cmd, stats)
			}
			rows := [][]string{
				{"Clips", strconv.Itoa(stats.Clips)},
				{"Known shows", strconv.Itoa(stats.Shows)},
				{"Shows with clips", strconv.Itoa(stats.ClipShows)},
				{"Lists", strconv.Itoa(stats.Lists)},
				{"Tag groups", strconv.Itoa(stats.TagGroups)},
				{"Tags", strconv.Itoa(stats.Tags)},
			}
			writeTable(cmd, []string{"Item", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
