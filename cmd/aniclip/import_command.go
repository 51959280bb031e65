package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aniclip/internal/clipdb"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <clip-file>...",
		Short: "Merge clip files into the database",
		Long: "Merge clip files into the database. Files use the same format as the\n" +
			"clip file: List:: blocks plus one clip line per clip. Existing clips are\n" +
			"merged; new lists are created.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				changed := false
				for _, path := range args {
					result, err := db.LoadClips(path)
					if err != nil {
						return changed, err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d clips read, %d rejected, %d lists\n",
						path, result.Added, result.Rejected, result.Lists)
					if result.Added > 0 {
						changed = true
					}
				}
				return changed, nil
			})
		},
	}
}
