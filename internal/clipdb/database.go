package clipdb

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"aniclip/internal/clip"
	"aniclip/internal/config"
	"aniclip/internal/logging"
	"aniclip/internal/tags"
)

// MainListName names the list that holds every clip.
const MainListName = "General"

var (
	// ErrInvalidClip reports a clip without a show or with an end before its start.
	ErrInvalidClip = errors.New("invalid clip")
	// ErrUnknownList reports a list name that does not exist.
	ErrUnknownList = errors.New("unknown list")
)

// Database is the in-memory clip collection.
type Database struct {
	main   *clip.List
	lists  []*clip.List
	shows  []string
	tags   *tags.Manager
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// Stats summarizes the database contents.
type Stats struct {
	Clips     int `json:"clips"`
	Shows     int `json:"shows"`
	ClipShows int `json:"clip_shows"`
	Lists     int `json:"lists"`
	TagGroups int `json:"tag_groups"`
	Tags      int `json:"tags"`
}

// New returns an empty database with no backing files.
func New(logger *slog.Logger) *Database {
	logger = logging.NewComponentLogger(logger, "clipdb")
	return &Database{
		main:   clip.NewList(MainListName),
		tags:   tags.NewManager(logger),
		logger: logger,
		now:    time.Now,
	}
}

// Open returns a database loaded from the files named in cfg. Missing or
// unreadable files are logged and leave the corresponding data empty.
func Open(cfg *config.Config, logger *slog.Logger) (*Database, error) {
	if cfg == nil {
		return nil, errors.New("clipdb: config is required")
	}
	db := New(logger)
	db.cfg = cfg

	if err := db.LoadTags(cfg.Paths.TagsFile); err != nil {
		db.warnLoad("tag file", cfg.Paths.TagsFile, err)
	}
	if catalog := cfg.ShowCatalogFile(); catalog != cfg.Paths.ShowsFile {
		// Either file alone is a complete setup: the export before the first
		// save, the catalogue once the export has been removed.
		for _, path := range []string{cfg.Paths.ShowsFile, catalog} {
			if _, err := db.LoadShows(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				db.warnLoad("show file", path, err)
			}
		}
	} else if _, err := db.LoadShows(cfg.Paths.ShowsFile); err != nil {
		db.warnLoad("show file", cfg.Paths.ShowsFile, err)
	}
	if _, err := db.LoadClips(cfg.Paths.ClipsFile); err != nil {
		db.warnLoad("clip file", cfg.Paths.ClipsFile, err)
	}

	db.logger.Info("clip database opened",
		logging.String(logging.FieldEventType, "clipdb_opened"),
		logging.String(logging.FieldPath, cfg.Paths.DataDir),
		logging.Int("clips", db.main.Len()),
		logging.Int("shows", len(db.shows)),
		logging.Int("lists", len(db.lists)),
	)
	return db, nil
}

func (db *Database) warnLoad(kind, path string, err error) {
	logging.WarnWithContext(db.logger, "failed to load "+kind, "clipdb_load_failed",
		logging.String(logging.FieldPath, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check that the file exists and is readable"),
		logging.String(logging.FieldImpact, kind+" contents are not available in this session"),
	)
}

// Config returns the configuration the database was opened with, or nil.
func (db *Database) Config() *config.Config {
	return db.cfg
}

// MainList returns the list holding every clip.
func (db *Database) MainList() *clip.List {
	return db.main
}

// List returns the list named name. MainListName returns the main list.
func (db *Database) List(name string) *clip.List {
	if name == MainListName {
		return db.main
	}
	for _, l := range db.lists {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

// Lists returns the sub lists in creation order.
func (db *Database) Lists() []*clip.List {
	return slices.Clone(db.lists)
}

// Shows returns the known show titles.
func (db *Database) Shows() []string {
	return slices.Clone(db.shows)
}

// HasShow reports whether title is a known show.
func (db *Database) HasShow(title string) bool {
	return slices.Contains(db.shows, title)
}

// AddShow records title as a known show. It reports whether it was new.
func (db *Database) AddShow(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" || db.HasShow(title) {
		return false
	}
	db.shows = append(db.shows, title)
	return true
}

// Tags returns the tag manager.
func (db *Database) Tags() *tags.Manager {
	return db.tags
}

// Stats counts clips, shows, lists and tags.
func (db *Database) Stats() Stats {
	stats := Stats{
		Clips:     db.main.Len(),
		Shows:     len(db.shows),
		ClipShows: len(db.main.Shows()),
		Lists:     len(db.lists),
		TagGroups: len(db.tags.Groups()),
	}
	if g := db.tags.Lookup(tags.DefaultGroup); g != nil {
		stats.Tags = g.Len()
	}
	return stats
}

// Find returns the clip with the given identity, or nil.
func (db *Database) Find(show string, episode int, bounds clip.TimeBound) *clip.Clip {
	s := db.main.Show(show)
	if s == nil {
		return nil
	}
	return s.Find(episode, bounds)
}

// AddClip returns the clip with the given identity, creating it in the main
// list when it does not exist yet. The clip is then added to every named
// list; lists that do not exist are created.
func (db *Database) AddClip(show string, episode int, bounds clip.TimeBound, lists ...string) (*clip.Clip, error) {
	if strings.TrimSpace(show) == "" {
		return nil, fmt.Errorf("%w: show name is empty", ErrInvalidClip)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: %s ends before it starts", ErrInvalidClip, bounds)
	}

	c := db.Find(show, episode, bounds)
	if c == nil {
		c = clip.New(show, episode, bounds)
		db.AddShow(show)
		db.main.Add(c)
	}

	for _, name := range uniqueListNames(lists) {
		list := db.List(name)
		if list == nil {
			list = clip.NewList(name)
			db.lists = append(db.lists, list)
			db.logger.Info("created list",
				logging.String(logging.FieldEventType, "list_created"),
				logging.String(logging.FieldList, name),
			)
		}
		list.Add(c)
	}
	return c, nil
}

// AddRecord adds rec's identity through AddClip and merges its metadata into
// the stored clip. Season and year overwrite, tags accumulate, and source,
// link and note are only set when the stored value is empty.
func (db *Database) AddRecord(rec *clip.Clip, lists ...string) (*clip.Clip, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidClip)
	}
	c, err := db.AddClip(rec.Show, rec.Episode, rec.Bounds, lists...)
	if err != nil {
		return nil, err
	}

	if rec.Season != "" {
		c.Season = rec.Season
	}
	c.Year = rec.Year
	c.AddTags(rec.Tags...)
	db.tags.AddTags(rec.Tags, "")

	db.mergeField(c, "source", &c.Source, rec.Source)
	db.mergeField(c, "link", &c.Link, rec.Link)
	db.mergeField(c, "note", &c.Note, rec.Note)
	return c, nil
}

func (db *Database) mergeField(c *clip.Clip, field string, current *string, incoming string) {
	if incoming == "" || incoming == *current {
		return
	}
	if *current == "" {
		*current = incoming
		return
	}
	logging.WarnWithContext(db.logger, "clip "+field+" conflict; keeping stored value", "clip_field_conflict",
		logging.String(logging.FieldShow, c.Show),
		logging.Int("episode", c.Episode),
		logging.String("field", field),
		logging.String("current", *current),
		logging.String("incoming", incoming),
		logging.String(logging.FieldErrorHint, "edit the clip file to pick the correct value"),
		logging.String(logging.FieldImpact, "incoming value was ignored"),
	)
}

// AddLine parses a clip line and adds it through AddRecord.
func (db *Database) AddLine(line string, lists ...string) (*clip.Clip, error) {
	rec, err := clip.ParseLine(line)
	if err != nil {
		return nil, err
	}
	return db.AddRecord(rec, lists...)
}

// RemoveClip removes the clip from the main list and every sub list.
func (db *Database) RemoveClip(show string, episode int, bounds clip.TimeBound) bool {
	c := db.Find(show, episode, bounds)
	if c == nil {
		return false
	}
	db.main.Remove(c)
	for _, l := range db.lists {
		l.Remove(c)
	}
	return true
}

// uniqueListNames drops empty names, the main list and repeats.
func uniqueListNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || name == MainListName || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
