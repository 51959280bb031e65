package clipdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aniclip/internal/clip"
	"aniclip/internal/logging"
)

// ErrUnsupportedShowFile reports a show file that is neither .txt nor .xml.
var ErrUnsupportedShowFile = errors.New("unsupported show file type")

// LoadResult counts the outcome of reading a clip file.
type LoadResult struct {
	Added    int
	Rejected int
	Lists    int
}

// LoadClips reads a clip file into the database.
func (db *Database) LoadClips(path string) (LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open clip file: %w", err)
	}
	defer file.Close()

	result, err := db.ReadClips(file)
	if err != nil {
		return result, err
	}
	db.logger.Info("clip file loaded",
		logging.String(logging.FieldEventType, "clip_file_loaded"),
		logging.String(logging.FieldPath, path),
		logging.Int("added", result.Added),
		logging.Int("rejected", result.Rejected),
		logging.Int("lists", result.Lists),
	)
	return result, nil
}

// ReadClips parses clip file content. Lines outside a List:: block go to the
// main list only; lines inside a block also go to that list.
func (db *Database) ReadClips(r io.Reader) (LoadResult, error) {
	var (
		result  LoadResult
		current string
		inList  bool
		inBlock int
		lineNum int
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := strings.CutPrefix(line, clip.ListPrefix); ok {
			if inList {
				logging.ErrorWithContext(db.logger, "nested list header ignored", "clip_list_nested",
					logging.String(logging.FieldList, current),
					logging.Int("line", lineNum),
					logging.String("entry", line),
					logging.String(logging.FieldErrorHint, "close the current list with } before starting another"),
				)
				continue
			}
			current, inList, inBlock = name, true, 0
			result.Lists++
			continue
		}
		if inList {
			switch {
			case strings.HasPrefix(line, "}"):
				db.logger.Debug("list block loaded",
					logging.String(logging.FieldList, current),
					logging.Int("clips", inBlock),
				)
				current, inList = "", false
				continue
			case strings.HasPrefix(line, "{"):
				continue
			}
		}

		if _, err := db.AddLine(line, current); err != nil {
			result.Rejected++
			logging.WarnWithContext(db.logger, "clip line rejected", "clip_line_rejected",
				logging.Int("line", lineNum),
				logging.String(logging.FieldList, current),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "expected show[|]ep[|]hh:mm:ss-hh:mm:ss[|]season[|]year[|]tags[|]source[|]link[|]note"),
				logging.String(logging.FieldImpact, "clip was not loaded"),
			)
			continue
		}
		result.Added++
		inBlock++
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read clip file: %w", err)
	}
	return result, nil
}

// LoadShows reads a show file and returns the number of new shows. Text files
// hold one title per line; XML files are MyAnimeList exports.
func (db *Database) LoadShows(path string) (int, error) {
	var read func(io.Reader) ([]string, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		read = readShowText
	case ".xml":
		read = readMALExport
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedShowFile, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open show file: %w", err)
	}
	defer file.Close()

	titles, err := read(file)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, title := range titles {
		if db.AddShow(title) {
			added++
		}
	}
	db.logger.Info("show file loaded",
		logging.String(logging.FieldEventType, "show_file_loaded"),
		logging.String(logging.FieldPath, path),
		logging.Int("added", added),
	)
	return added, nil
}

// LoadTags reads a tag file into the tag manager.
func (db *Database) LoadTags(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tag file: %w", err)
	}
	defer file.Close()

	if err := db.tags.Read(file); err != nil {
		return err
	}
	db.logger.Info("tag file loaded",
		logging.String(logging.FieldEventType, "tag_file_loaded"),
		logging.String(logging.FieldPath, path),
		logging.Int("groups", len(db.tags.Groups())),
	)
	return nil
}
