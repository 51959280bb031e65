package config

const (
	defaultDataDir          = "~/.local/share/aniclip"
	defaultClipsFile        = "activeClipDB.txt"
	defaultTagsFile         = "activeTagList.txt"
	defaultShowsFile        = "activeShowList.txt"
	defaultBackupDir        = "backup"
	defaultLogDir           = "~/.local/share/aniclip/logs"
	defaultBackupEnabled    = true
	defaultBackupKeep       = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultExportSQLite     = "aniclip.db"
	envDataDir              = "ANICLIP_DATA_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ClipsFile: defaultClipsFile,
			TagsFile:  defaultTagsFile,
			ShowsFile: defaultShowsFile,
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Backup: Backup{
			Enabled: defaultBackupEnabled,
			Keep:    defaultBackupKeep,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Export: Export{
			SQLitePath: defaultExportSQLite,
		},
	}
}
