package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"aniclip/internal/clipdb"
	"aniclip/internal/config"
	"aniclip/internal/logging"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	commandPath string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// ensureLogger builds the session logger once and prunes expired log files.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		verbose := c.verboseFlag != nil && *c.verboseFlag
		logger, logPath, err := logging.NewFromConfig(cfg, uuid.NewString(), c.commandPath, verbose)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logging.PruneLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, logPath)
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openDatabase() (*clipdb.Database, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return clipdb.Open(cfg, c.ensureLogger())
}

// withDatabase opens the database, runs fn and saves when fn reports a change.
func (c *commandContext) withDatabase(cmd *cobra.Command, fn func(*clipdb.Database) (bool, error)) error {
	db, err := c.openDatabase()
	if err != nil {
		return err
	}
	changed, err := fn(db)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return saveDatabase(cmd, db)
}

func saveDatabase(cmd *cobra.Command, db *clipdb.Database) error {
	result, err := db.Save()
	if err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	if result.BackupDir != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved (backup %s)\n", filepath.Base(result.BackupDir))
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
