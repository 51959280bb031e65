package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeBackup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envDataDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	files := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.clips_file", &c.Paths.ClipsFile, defaultClipsFile},
		{"paths.tags_file", &c.Paths.TagsFile, defaultTagsFile},
		{"paths.shows_file", &c.Paths.ShowsFile, defaultShowsFile},
		{"paths.backup_dir", &c.Paths.BackupDir, defaultBackupDir},
	}
	for _, f := range files {
		if strings.TrimSpace(*f.value) == "" {
			*f.value = f.fallback
		}
		if *f.value, err = resolveIn(c.Paths.DataDir, *f.value); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}

	if c.Paths.LogDir, err = resolveIn(c.Paths.DataDir, c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExport() error {
	if strings.TrimSpace(c.Export.SQLitePath) == "" {
		c.Export.SQLitePath = defaultExportSQLite
	}
	var err error
	if c.Export.SQLitePath, err = resolveIn(c.Paths.DataDir, c.Export.SQLitePath); err != nil {
		return fmt.Errorf("export.sqlite_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeBackup() {
	if c.Backup.Keep < 0 {
		c.Backup.Keep = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
