package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aniclip/internal/clip"
)

func newListsCommand(ctx *commandContext) *cobra.Command {
	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and export clip lists",
	}
	listsCmd.AddCommand(newListsListCommand(ctx))
	listsCmd.AddCommand(newListsExportCommand(ctx))
	return listsCmd
}

func newListsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List clip lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			lists := append([]*clip.List{db.MainList()}, db.Lists()...)
			rows := make([][]string, 0, len(lists))
			for _, l := range lists {
				rows = append(rows, []string{
					l.Name(),
					strconv.Itoa(len(l.Shows())),
					strconv.Itoa(l.Len()),
					yesNo(l.Visible()),
				})
			}
			writeTable(cmd, []string{"List", "Shows", "Clips", "Visible"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft})
			return nil
		},
	}
}

func newListsExportCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <list>",
		Short: "Write one list to its own clip file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = "."
			}
			path, err := db.ExportList(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported list %q to %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Destination directory (default current directory)")
	return cmd
}
