package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"aniclip/internal/logging"
	"aniclip/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent aniclip log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.LogDir == "" {
				return fmt.Errorf("no log directory configured (set paths.log_dir)")
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			// Pin the session file so a later session moving the pointer does
			// not shift the follow offset onto another file.
			if resolved, err := filepath.EvalSymlinks(path); err == nil {
				path = resolved
			}

			recent, offset, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range recent {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, logs.DefaultPollInterval, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	return cmd
}
