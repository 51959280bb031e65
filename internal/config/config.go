package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the data directory and the files kept inside it.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	ClipsFile string `toml:"clips_file"`
	TagsFile  string `toml:"tags_file"`
	ShowsFile string `toml:"shows_file"`
	BackupDir string `toml:"backup_dir"`
	LogDir    string `toml:"log_dir"`
}

// Backup contains configuration for the copies written after every save.
type Backup struct {
	Enabled bool `toml:"enabled"`
	// Keep is the number of backup directories retained. 0 keeps all of them.
	Keep int `toml:"keep"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Export contains configuration for SQLite snapshots.
type Export struct {
	SQLitePath string `toml:"sqlite_path"`
}

// Config encapsulates all configuration values for aniclip.
//
// Configuration sections:
//   - Paths: data directory, data file names, backup and log directories
//   - Backup: whether saves are backed up and how many copies are kept
//   - Logging: log format, level, and retention
//   - Export: default SQLite snapshot location
type Config struct {
	Paths   Paths   `toml:"paths"`
	Backup  Backup  `toml:"backup"`
	Logging Logging `toml:"logging"`
	Export  Export  `toml:"export"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/aniclip/config.toml")
}

// Load locates, parses, and validates a configuration file. Files without a
// .toml extension are read in the legacy key/value format. The returned config
// has all path fields expanded and resolved against the data directory.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if isLegacyPath(resolvedPath) {
			if err := cfg.readLegacy(file); err != nil {
				return nil, "", false, fmt.Errorf("parse legacy config: %w", err)
			}
			if strings.TrimSpace(os.Getenv(envDataDir)) == "" {
				cfg.Paths.DataDir = filepath.Dir(resolvedPath)
			}
		} else {
			decoder := toml.NewDecoder(file)
			if err := decoder.Decode(&cfg); err != nil {
				return nil, "", false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func isLegacyPath(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), ".toml")
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aniclip.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data directory plus the backup and log
// directories when they are in use.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir}
	if c.Backup.Enabled {
		dirs = append(dirs, c.Paths.BackupDir)
	}
	if c.Paths.LogDir != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DataFiles returns the clip, tag and show file paths, plus the show catalogue
// when it differs from the show file.
func (c *Config) DataFiles() []string {
	files := []string{c.Paths.ClipsFile, c.Paths.TagsFile, c.Paths.ShowsFile}
	if catalog := c.ShowCatalogFile(); catalog != c.Paths.ShowsFile {
		files = append(files, catalog)
	}
	return files
}

// ShowCatalogFile returns the text file the known shows are saved to. A
// MyAnimeList .xml show file is read-only input, so its catalogue lives in a
// .txt file next to it.
func (c *Config) ShowCatalogFile() string {
	path := c.Paths.ShowsFile
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".xml") {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".txt"
}

// LockPath returns the file used to serialize saves to the data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, ".aniclip.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// resolveIn expands pathValue and anchors relative results at base.
func resolveIn(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if strings.HasPrefix(pathValue, "~") || filepath.IsAbs(pathValue) {
		return expandPath(pathValue)
	}
	return filepath.Join(base, pathValue), nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
