package clipdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"aniclip/internal/clip"
	"aniclip/internal/fileutil"
	"aniclip/internal/logging"
	"aniclip/internal/textutil"
)

const headerTimeLayout = "02 Jan 2006 15:04:05"

// ErrLocked reports that another process is saving to the data directory.
var ErrLocked = errors.New("data directory is locked by another aniclip process")

// SaveResult describes a completed save.
type SaveResult struct {
	BackupDir     string
	PrunedBackups []string
}

// Save writes the clip, show and tag files and then backs them up. Shows go
// to the show catalogue, so a MyAnimeList export is never overwritten.
func (db *Database) Save() (SaveResult, error) {
	if db.cfg == nil {
		return SaveResult{}, errors.New("clipdb: database has no backing files")
	}
	if err := os.MkdirAll(db.cfg.Paths.DataDir, 0o755); err != nil {
		return SaveResult{}, fmt.Errorf("create data directory: %w", err)
	}

	started := time.Now()
	lock := flock.New(db.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return SaveResult{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return SaveResult{}, ErrLocked
	}
	defer func() {
		_ = lock.Unlock()
	}()

	now := db.now()
	paths := db.cfg.Paths
	writes := []struct {
		kind string
		path string
		fill func(io.Writer) error
	}{
		{"clip", paths.ClipsFile, func(w io.Writer) error { return db.WriteClips(w, now) }},
		{"show", db.cfg.ShowCatalogFile(), func(w io.Writer) error { return db.WriteShows(w, now) }},
		{"tag", paths.TagsFile, func(w io.Writer) error { return db.tags.Write(w, now) }},
	}
	for _, item := range writes {
		if err := fileutil.WriteAtomic(item.path, item.fill); err != nil {
			return SaveResult{}, fmt.Errorf("save %s file: %w", item.kind, err)
		}
		db.logger.Debug("data file saved",
			logging.String(logging.FieldPath, item.path),
			logging.String("kind", item.kind),
		)
	}
	db.logger.Info("clip database saved",
		logging.String(logging.FieldEventType, "clipdb_saved"),
		logging.String(logging.FieldPath, paths.DataDir),
		logging.Int("clips", db.main.Len()),
		logging.Duration("elapsed", time.Since(started)),
	)

	var result SaveResult
	if db.cfg.Backup.Enabled {
		dir, err := db.writeBackup(now)
		if err != nil {
			return result, err
		}
		result.BackupDir = dir
		result.PrunedBackups = db.pruneBackups(db.cfg.Backup.Keep)
	}
	return result, nil
}

// WriteClips writes the clip file: a header, the main list, then every sub list.
func (db *Database) WriteClips(w io.Writer, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#ClipList | %s\n", now.Format(headerTimeLayout))
	lists := append([]*clip.List{db.main}, db.lists...)
	for _, l := range lists {
		if _, err := l.WriteTo(bw); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write clip file: %w", err)
	}
	return nil
}

// WriteShows writes the show file: a header and one title per line.
func (db *Database) WriteShows(w io.Writer, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#ShowList | %s\n", now.Format(headerTimeLayout))
	for _, show := range db.shows {
		fmt.Fprintln(bw, show)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write show file: %w", err)
	}
	return nil
}

// ExportList writes a single list block into dir and returns the file path.
func (db *Database) ExportList(name, dir string) (string, error) {
	list := db.List(name)
	if list == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, textutil.SanitizeFileName(name, "list")+".txt")
	now := db.now()
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "#ClipList | %s\n", now.Format(headerTimeLayout)); err != nil {
			return err
		}
		_, err := list.WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("export list %q: %w", name, err)
	}
	db.logger.Info("list exported",
		logging.String(logging.FieldEventType, "list_exported"),
		logging.String(logging.FieldList, name),
		logging.String(logging.FieldPath, path),
	)
	return path, nil
}
