package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aniclip/internal/clipdb"
	"aniclip/internal/logging"
	"aniclip/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload and summarize the database whenever its files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()

			report := func(_ context.Context, changed []string) {
				names := make([]string, 0, len(changed))
				for _, path := range changed {
					names = append(names, filepath.Base(path))
				}
				db, err := clipdb.Open(cfg, logger)
				if err != nil {
					logging.WarnWithContext(logger, "reload after change failed", "watch_reload_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "summary not refreshed"),
					)
					return
				}
				stats := db.Stats()
				fmt.Fprintf(out, "%s changed %s: %d clips, %d shows, %d lists, %d tags\n",
					time.Now().Format(time.TimeOnly), strings.Join(names, ", "),
					stats.Clips, stats.Shows, stats.Lists, stats.Tags)
			}

			w, err := watch.New(cfg.DataFiles(), report, watch.Options{Debounce: debounce, Logger: logger})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", cfg.Paths.DataDir)
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before reporting a change")
	return cmd
}
