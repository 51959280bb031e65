package snapshot_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"aniclip/internal/snapshot"
	"aniclip/internal/testsupport"
)

func TestExportAndInspect(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ClipsFile, testsupport.SampleClipFile)
	testsupport.WriteLines(t, cfg.Paths.ShowsFile, "Monster")
	testsupport.WriteLines(t, cfg.Paths.TagsFile, "name=Mood:tags=sad|happy")
	db := testsupport.MustOpenDatabase(t, cfg)

	ctx := context.Background()
	summary, err := snapshot.Export(ctx, db, cfg.Export.SQLitePath)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if summary.ExportID == "" {
		t.Fatal("expected an export id")
	}
	if summary.Shows != 3 || summary.Clips != 3 || summary.Lists != 2 || summary.ListEntries != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ClipTags != 4 {
		t.Fatalf("expected 4 clip tags, got %d", summary.ClipTags)
	}

	inspected, err := snapshot.Inspect(ctx, cfg.Export.SQLitePath)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !inspected.ExportedAt.Equal(summary.ExportedAt) {
		t.Fatalf("export time mismatch: %v vs %v", inspected.ExportedAt, summary.ExportedAt)
	}
	inspected.ExportedAt = summary.ExportedAt
	if diff := cmp.Diff(summary, inspected); diff != "" {
		t.Fatalf("inspect summary mismatch (-export +inspect):\n%s", diff)
	}
}

func TestExportContents(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ClipsFile, testsupport.SampleClipFile)
	db := testsupport.MustOpenDatabase(t, cfg)
	if l := db.List("Favorites"); l != nil {
		l.SetVisible(false)
	}

	path := filepath.Join(t.TempDir(), "snap.db")
	if _, err := snapshot.Export(context.Background(), db, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT s.title, c.episode, c.start_seconds, l.name, l.visible
		FROM list_clips lc
		JOIN lists l ON l.id = lc.list_id
		JOIN clips c ON c.id = lc.clip_id
		JOIN shows s ON s.id = c.show_id
		WHERE l.is_main = 0`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var (
			title, list string
			ep, start   int
			visible     bool
		)
		if err := rows.Scan(&title, &ep, &start, &list, &visible); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if visible {
			t.Fatalf("list %s should be hidden", list)
		}
		got = append(got, strings.Join([]string{list, title}, "/"))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if diff := cmp.Diff([]string{"Favorites/Cowboy Bebop"}, got); diff != "" {
		t.Fatalf("unexpected list entries (-want +got):\n%s", diff)
	}
}

func TestInspectRejectsForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := sqlDB.Exec("CREATE TABLE things (id INTEGER)"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = sqlDB.Close()

	if _, err := snapshot.Inspect(context.Background(), path); !errors.Is(err, snapshot.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestInspectRejectsNewerSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDatabase(t, cfg)
	path := filepath.Join(t.TempDir(), "snap.db")
	if _, err := snapshot.Export(context.Background(), db, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := sqlDB.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_ = sqlDB.Close()

	if _, err := snapshot.Inspect(context.Background(), path); !errors.Is(err, snapshot.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := snapshot.Inspect(context.Background(), filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}
