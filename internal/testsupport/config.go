package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"aniclip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test.
// Every path is absolute; the data directory exists, the data files do not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}

	cfgVal := config.Default()
	cfgVal.Paths.DataDir = dataDir
	cfgVal.Paths.ClipsFile = filepath.Join(dataDir, "activeClipDB.txt")
	cfgVal.Paths.TagsFile = filepath.Join(dataDir, "activeTagList.txt")
	cfgVal.Paths.ShowsFile = filepath.Join(dataDir, "activeShowList.txt")
	cfgVal.Paths.BackupDir = filepath.Join(dataDir, "backup")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Export.SQLitePath = filepath.Join(base, "export", "aniclip.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackupKeep sets how many backup directories survive a save.
func WithBackupKeep(keep int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Backup.Enabled = true
		b.cfg.Backup.Keep = keep
	}
}

// WithoutBackups disables the post-save backup.
func WithoutBackups() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Backup.Enabled = false
	}
}

// WithShowsFile points the show file at name inside the data directory.
func WithShowsFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ShowsFile = filepath.Join(b.cfg.Paths.DataDir, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
