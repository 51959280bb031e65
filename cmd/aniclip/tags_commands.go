package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aniclip/internal/clipdb"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags and tag groups",
	}
	tagsCmd.AddCommand(newTagsListCommand(ctx))
	tagsCmd.AddCommand(newTagsAddCommand(ctx))
	tagsCmd.AddCommand(newTagsRemoveCommand(ctx))
	return tagsCmd
}

func newTagsListCommand(ctx *commandContext) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tag groups and their tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			manager := db.Tags()
			manager.Sort()

			var rows [][]string
			for _, g := range manager.Groups() {
				if group != "" && g.Name() != group {
					continue
				}
				rows = append(rows, []string{g.Name(), strconv.Itoa(g.Len()), strings.Join(g.Tags(), ", ")})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags")
				return nil
			}
			writeTable(cmd, []string{"Group", "Count", "Tags"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft})
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Only this group")
	return cmd
}

func newTagsAddCommand(ctx *commandContext) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "add <tag>...",
		Short: "Add tags to a group (and to the General group)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				added := 0
				for _, tag := range args {
					if db.Tags().AddTag(strings.TrimSpace(tag), group) {
						added++
					}
				}
				db.Tags().Sort()
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d tags\n", added)
				return added > 0, nil
			})
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Tag group (default General)")
	return cmd
}

func newTagsRemoveCommand(ctx *commandContext) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:     "rm <tag>...",
		Aliases: []string{"remove"},
		Short:   "Remove tags from a group, or from every group",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				removed := 0
				for _, tag := range args {
					if db.Tags().RemoveTag(tag, group) {
						removed++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d tags\n", removed)
				return removed > 0, nil
			})
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Tag group (default every group)")
	return cmd
}
