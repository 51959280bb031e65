package clipdb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"aniclip/internal/fileutil"
	"aniclip/internal/logging"
)

const (
	backupPrefix     = "backup_"
	backupTimeLayout = "20060102_150405"
)

// writeBackup copies every existing data file into a new timestamped
// directory. Missing files are logged and skipped.
func (db *Database) writeBackup(now time.Time) (string, error) {
	dir := filepath.Join(db.cfg.Paths.BackupDir, backupPrefix+now.Format(backupTimeLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	for _, src := range db.cfg.DataFiles() {
		dst := filepath.Join(dir, filepath.Base(src))
		if _, err := fileutil.CopyFile(src, dst); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logging.WarnWithContext(db.logger, "data file missing; not backed up", "backup_file_missing",
					logging.String(logging.FieldPath, src),
					logging.String(logging.FieldImpact, "backup is incomplete"),
				)
				continue
			}
			return dir, fmt.Errorf("backup %s: %w", filepath.Base(src), err)
		}
	}
	db.logger.Info("backup written",
		logging.String(logging.FieldEventType, "backup_written"),
		logging.String(logging.FieldPath, dir),
	)
	return dir, nil
}

// Backups returns the backup directories, oldest first.
func (db *Database) Backups() ([]string, error) {
	if db.cfg == nil {
		return nil, nil
	}
	return listBackups(db.cfg.Paths.BackupDir)
}

func listBackups(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	// The timestamp layout sorts lexically.
	slices.Sort(dirs)
	return dirs, nil
}

// pruneBackups removes the oldest backup directories beyond keep. A keep of
// zero keeps everything.
func (db *Database) pruneBackups(keep int) []string {
	if keep <= 0 {
		return nil
	}
	dirs, err := listBackups(db.cfg.Paths.BackupDir)
	if err != nil {
		logging.WarnWithContext(db.logger, "failed to list backups", "backup_prune_failed",
			logging.String(logging.FieldPath, db.cfg.Paths.BackupDir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check backup_dir permissions"),
			logging.String(logging.FieldImpact, "old backups were not pruned"),
		)
		return nil
	}
	if len(dirs) <= keep {
		return nil
	}

	var removed []string
	for _, dir := range dirs[:len(dirs)-keep] {
		if err := os.RemoveAll(dir); err != nil {
			logging.WarnWithContext(db.logger, "failed to remove old backup", "backup_prune_failed",
				logging.String(logging.FieldPath, dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check backup_dir permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		removed = append(removed, dir)
		db.logger.Info("removed old backup",
			logging.String(logging.FieldPath, dir),
			logging.String(logging.FieldEventType, "backup_pruned"),
		)
	}
	return removed
}
