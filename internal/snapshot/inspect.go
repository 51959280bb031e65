package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Inspect opens a snapshot read-only and summarizes its contents.
func Inspect(ctx context.Context, path string) (Summary, error) {
	ctx = ensureContext(ctx)
	if _, err := os.Stat(path); err != nil {
		return Summary{}, fmt.Errorf("stat snapshot: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := openSQLite(dsn)
	if err != nil {
		return Summary{}, err
	}
	defer db.Close()

	if err := checkSchema(ctx, db); err != nil {
		return Summary{}, err
	}

	var (
		summary    Summary
		exportedAt string
	)
	err = db.QueryRowContext(ctx, "SELECT id, exported_at, data_dir FROM export LIMIT 1").
		Scan(&summary.ExportID, &exportedAt, &summary.DataDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read export record: %w", err)
	}
	if summary.ExportedAt, err = time.Parse(time.RFC3339, exportedAt); err != nil {
		return Summary{}, fmt.Errorf("parse export time %q: %w", exportedAt, err)
	}

	counts := []struct {
		table string
		dst   *int
	}{
		{"shows", &summary.Shows},
		{"clips", &summary.Clips},
		{"clip_tags", &summary.ClipTags},
		{"lists", &summary.Lists},
		{"list_clips", &summary.ListEntries},
		{"tag_groups", &summary.TagGroups},
		{"group_tags", &summary.Tags},
	}
	for _, c := range counts {
		if err := countRows(ctx, db, c.table, c.dst); err != nil {
			return Summary{}, err
		}
	}
	return summary, nil
}

func countRows(ctx context.Context, db *sql.DB, table string, dst *int) error {
	// table names come from the fixed list in Inspect.
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	return nil
}
