package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"aniclip/internal/clip"
	"aniclip/internal/clipdb"
)

// Summary describes the contents of a snapshot.
type Summary struct {
	ExportID    string
	ExportedAt  time.Time
	DataDir     string
	Shows       int
	Clips       int
	ClipTags    int
	Lists       int
	ListEntries int
	TagGroups   int
	Tags        int
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func openSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

// Export writes the whole database to a new SQLite file at path, replacing
// any previous snapshot once the new one is complete.
func Export(ctx context.Context, source *clipdb.Database, path string) (Summary, error) {
	ctx = ensureContext(ctx)
	if source == nil {
		return Summary{}, errors.New("snapshot: database is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Summary{}, fmt.Errorf("create snapshot directory: %w", err)
	}

	tmpPath := path + ".partial"
	if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("remove stale partial snapshot: %w", err)
	}

	db, err := openSQLite(tmpPath)
	if err != nil {
		return Summary{}, err
	}
	summary, err := write(ctx, db, source)
	if closeErr := db.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close snapshot: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return Summary{}, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return Summary{}, fmt.Errorf("rename snapshot into place: %w", err)
	}
	return summary, nil
}

func write(ctx context.Context, db *sql.DB, source *clipdb.Database) (Summary, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := createSchema(ctx, tx); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now().UTC().Truncate(time.Second),
	}
	if cfg := source.Config(); cfg != nil {
		summary.DataDir = cfg.Paths.DataDir
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO export (id, exported_at, data_dir) VALUES (?, ?, ?)",
		summary.ExportID, summary.ExportedAt.Format(time.RFC3339), summary.DataDir,
	); err != nil {
		return Summary{}, fmt.Errorf("insert export record: %w", err)
	}

	showIDs, err := writeShows(ctx, tx, source, &summary)
	if err != nil {
		return Summary{}, err
	}
	clipIDs, err := writeClips(ctx, tx, source.MainList().Clips(), showIDs, &summary)
	if err != nil {
		return Summary{}, err
	}
	if err := writeLists(ctx, tx, source, clipIDs, &summary); err != nil {
		return Summary{}, err
	}
	if err := writeTagGroups(ctx, tx, source, &summary); err != nil {
		return Summary{}, err
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return summary, nil
}

func writeShows(ctx context.Context, tx *sql.Tx, source *clipdb.Database, summary *Summary) (map[string]int64, error) {
	ids := make(map[string]int64)
	insert := func(title string) error {
		if _, ok := ids[title]; ok {
			return nil
		}
		res, err := tx.ExecContext(ctx, "INSERT INTO shows (title) VALUES (?)", title)
		if err != nil {
			return fmt.Errorf("insert show %q: %w", title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("show id: %w", err)
		}
		ids[title] = id
		summary.Shows++
		return nil
	}
	for _, title := range source.Shows() {
		if err := insert(title); err != nil {
			return nil, err
		}
	}
	// Clips always name a known show, but a hand-edited show file may not.
	for _, s := range source.MainList().Shows() {
		if err := insert(s.Name()); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func writeClips(ctx context.Context, tx *sql.Tx, clips []*clip.Clip, showIDs map[string]int64, summary *Summary) (map[*clip.Clip]int64, error) {
	ids := make(map[*clip.Clip]int64, len(clips))
	for _, c := range clips {
		res, err := tx.ExecContext(ctx, `INSERT INTO clips
			(show_id, episode, start_seconds, end_seconds, season, year, source, link, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			showIDs[c.Show], c.Episode, int(c.Bounds.Start), int(c.Bounds.End),
			string(c.Season), c.Year, c.Source, c.Link, c.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("insert clip %s: %w", c, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("clip id: %w", err)
		}
		ids[c] = id
		summary.Clips++

		for pos, tag := range c.Tags {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO clip_tags (clip_id, position, tag) VALUES (?, ?, ?)", id, pos, tag,
			); err != nil {
				return nil, fmt.Errorf("insert tag %q for clip %s: %w", tag, c, err)
			}
			summary.ClipTags++
		}
	}
	return ids, nil
}

func writeLists(ctx context.Context, tx *sql.Tx, source *clipdb.Database, clipIDs map[*clip.Clip]int64, summary *Summary) error {
	lists := append([]*clip.List{source.MainList()}, source.Lists()...)
	for pos, l := range lists {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO lists (name, position, visible, is_main) VALUES (?, ?, ?, ?)",
			l.Name(), pos, l.Visible(), pos == 0,
		)
		if err != nil {
			return fmt.Errorf("insert list %q: %w", l.Name(), err)
		}
		listID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("list id: %w", err)
		}
		summary.Lists++

		for entry, c := range l.Clips() {
			clipID, ok := clipIDs[c]
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO list_clips (list_id, clip_id, position) VALUES (?, ?, ?)", listID, clipID, entry,
			); err != nil {
				return fmt.Errorf("insert list entry %q: %w", l.Name(), err)
			}
			summary.ListEntries++
		}
	}
	return nil
}

func writeTagGroups(ctx context.Context, tx *sql.Tx, source *clipdb.Database, summary *Summary) error {
	for pos, g := range source.Tags().Groups() {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO tag_groups (name, position) VALUES (?, ?)", g.Name(), pos,
		)
		if err != nil {
			return fmt.Errorf("insert tag group %q: %w", g.Name(), err)
		}
		groupID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("tag group id: %w", err)
		}
		summary.TagGroups++

		for tagPos, tag := range g.Tags() {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO group_tags (group_id, position, tag) VALUES (?, ?, ?)", groupID, tagPos, tag,
			); err != nil {
				return fmt.Errorf("insert tag %q in group %q: %w", tag, g.Name(), err)
			}
			summary.Tags++
		}
	}
	return nil
}
