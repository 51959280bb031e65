package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	files := []struct{ key, path string }{
		{"paths.clips_file", c.Paths.ClipsFile},
		{"paths.tags_file", c.Paths.TagsFile},
		{"paths.shows_file", c.Paths.ShowsFile},
	}
	if catalog := c.ShowCatalogFile(); catalog != c.Paths.ShowsFile {
		files = append(files, struct{ key, path string }{"the show catalogue for paths.shows_file", catalog})
	}
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if f.path == "" {
			return fmt.Errorf("%s must be set", f.key)
		}
		if other, ok := seen[f.path]; ok {
			return fmt.Errorf("%s and %s must name different files (both %q)", other, f.key, f.path)
		}
		seen[f.path] = f.key
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn or error)", c.Logging.Level)
	}
}
