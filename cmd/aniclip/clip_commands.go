package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aniclip/internal/clip"
	"aniclip/internal/clipdb"
)

const suggestionLimit = 3

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Add, remove and list clips",
	}
	clipCmd.AddCommand(newClipAddCommand(ctx))
	clipCmd.AddCommand(newClipRemoveCommand(ctx))
	clipCmd.AddCommand(newClipListCommand(ctx))
	return clipCmd
}

// parseIdentity reads the show, episode and time bound positional arguments.
func parseIdentity(args []string) (string, int, clip.TimeBound, error) {
	show := strings.TrimSpace(args[0])
	episode, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return "", 0, clip.TimeBound{}, fmt.Errorf("episode %q is not a number", args[1])
	}
	bounds, err := clip.ParseTimeBound(args[2])
	if err != nil {
		return "", 0, clip.TimeBound{}, err
	}
	return show, episode, bounds, nil
}

func newClipAddCommand(ctx *commandContext) *cobra.Command {
	var (
		lists  []string
		tags   []string
		season string
		year   int
		source string
		link   string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "add <show> <episode> <hh:mm:ss-hh:mm:ss>",
		Short: "Add a clip or merge metadata into an existing one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, episode, bounds, err := parseIdentity(args)
			if err != nil {
				return err
			}
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				if !db.HasShow(show) {
					fmt.Fprintf(cmd.ErrOrStderr(), "New show %q\n", show)
					if suggestions := db.SuggestShows(show, suggestionLimit); len(suggestions) > 0 {
						fmt.Fprintf(cmd.ErrOrStderr(), "Did you mean: %s?\n", strings.Join(suggestions, ", "))
					}
				}

				existing := db.Find(show, episode, bounds)
				rec := clip.New(show, episode, bounds)
				rec.Season = ""
				if season != "" {
					rec.Season = clip.ParseSeason(season)
				}
				rec.Year = year
				if existing != nil && !cmd.Flags().Changed("year") {
					rec.Year = existing.Year
				}
				rec.AddTags(tags...)
				rec.Source, rec.Link, rec.Note = source, link, note

				c, err := db.AddRecord(rec, lists...)
				if err != nil {
					return false, err
				}
				verb := "Added"
				if existing != nil {
					verb = "Updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, c)
				return true, nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&lists, "list", "l", nil, "Add the clip to these lists (created on demand)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags to attach")
	cmd.Flags().StringVar(&season, "season", "", "Airing season (spring, summer, fall, winter)")
	cmd.Flags().IntVar(&year, "year", 0, "Airing year")
	cmd.Flags().StringVar(&source, "source", "", "Local source file")
	cmd.Flags().StringVar(&link, "link", "", "Link to the clip")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	return cmd
}

func newClipRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <show> <episode> <hh:mm:ss-hh:mm:ss>",
		Aliases: []string{"remove"},
		Short:   "Remove a clip from every list",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, episode, bounds, err := parseIdentity(args)
			if err != nil {
				return err
			}
			return ctx.withDatabase(cmd, func(db *clipdb.Database) (bool, error) {
				if !db.RemoveClip(show, episode, bounds) {
					return false, fmt.Errorf("clip %s #%d %s not found", show, episode, bounds)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s #%d %s\n", show, episode, bounds)
				return true, nil
			})
		},
	}
}

type clipView struct {
	Show    string   `json:"show"`
	Episode int      `json:"episode"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Season  string   `json:"season"`
	Year    int      `json:"year,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Source  string   `json:"source,omitempty"`
	Link    string   `json:"link,omitempty"`
	Note    string   `json:"note,omitempty"`
}

func newClipListCommand(ctx *commandContext) *cobra.Command {
	var (
		listName   string
		showFilter string
		tagFilter  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			list := db.List(listName)
			if list == nil {
				return fmt.Errorf("%w: %q", clipdb.ErrUnknownList, listName)
			}

			var clips []*clip.Clip
			for _, c := range list.Clips() {
				if showFilter != "" && !strings.EqualFold(c.Show, showFilter) {
					continue
				}
				if tagFilter != "" && !c.HasTag(tagFilter) {
					continue
				}
				clips = append(clips, c)
			}

			if jsonOutput {
				views := make([]clipView, 0, len(clips))
				for _, c := range clips {
					views = append(views, clipView{
						Show:    c.Show,
						Episode: c.Episode,
						Start:   c.Bounds.Start.String(),
						End:     c.Bounds.End.String(),
						Season:  string(c.Season),
						Year:    c.Year,
						Tags:    c.Tags,
						Source:  c.Source,
						Link:    c.Link,
						Note:    c.Note,
					})
				}
				return writeJSON(cmd, views)
			}

			if len(clips) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clips")
				return nil
			}
			rows := make([][]string, 0, len(clips))
			for _, c := range clips {
				year := ""
				if c.Year != 0 {
					year = strconv.Itoa(c.Year)
				}
				rows = append(rows, []string{
					c.Show,
					strconv.Itoa(c.Episode),
					c.Bounds.String(),
					string(c.Season),
					year,
					strings.Join(c.Tags, ", "),
				})
			}
			writeTable(cmd, []string{"Show", "Ep", "Time", "Season", "Year", "Tags"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft})
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", clipdb.MainListName, "List to show")
	cmd.Flags().StringVar(&showFilter, "show", "", "Only clips of this show")
	cmd.Flags().StringVar(&tagFilter, "tag", "", "Only clips carrying this tag")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
