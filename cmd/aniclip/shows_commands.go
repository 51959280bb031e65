package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aniclip/internal/clipdb"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	showsCmd := &cobra.Command{
		Use:   "shows",
		Short: "Inspect and import known shows",
	}
	showsCmd.AddCommand(newShowsListCommand(ctx))
	showsCmd.AddCommand(newShowsImportCommand(ctx))
	return showsCmd
}

func newShowsListCommand(ctx *commandContext) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List known shows with their clip counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}

			shows := db.Shows()
			if search = strings.TrimSpace(search); search != "" {
				shows = db.SuggestShows(search, 0)
			}
			if len(shows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shows")
				return nil
			}

			mainList := db.MainList()
			rows := make([][]string, 0, len(shows))
			for _, show := range shows {
				count := 0
				if s := mainList.Show(show); s != nil {
					count = s.Len()
				}
				rows = append(rows, []string{show, strconv.Itoa(count)})
			}
			writeTable(cmd, []string{"Show", "Clips"}, rows, []columnAlignment{alignLeft, alignRight})
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Rank shows by similarity to this title")
	return cmd
}

func newShowsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import show titles from a .txt list or a MyAnimeList .xml export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				added, err := db.LoadShows(args[0])
				if err != nil {
					return false, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d new shows\n", added)
				return added > 0, nil
			})
		},
	}
}
