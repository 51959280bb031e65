package clipdb_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"aniclip/internal/clipdb"
	"aniclip/internal/logging"
	"aniclip/internal/testsupport"
)

func TestSaveRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ClipsFile, testsupport.SampleClipFile)
	db := testsupport.MustOpenDatabase(t, cfg)
	db.Tags().AddTag("space", "Setting")
	db.AddShow("Monster")

	result, err := db.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.BackupDir == "" {
		t.Fatal("expected a backup directory")
	}
	for _, name := range []string{"activeClipDB.txt", "activeTagList.txt", "activeShowList.txt"} {
		if _, err := os.Stat(filepath.Join(result.BackupDir, name)); err != nil {
			t.Fatalf("backup missing %s: %v", name, err)
		}
	}

	clips := testsupport.ReadFile(t, cfg.Paths.ClipsFile)
	if !strings.HasPrefix(clips, "#ClipList | ") {
		t.Fatalf("clip file header missing:\n%s", clips)
	}
	if !strings.Contains(clips, "List::General\n{\n\n\t#Cowboy Bebop\n") {
		t.Fatalf("clip file main block malformed:\n%s", clips)
	}
	if !strings.Contains(clips, "List::Favorites\n") {
		t.Fatalf("clip file missing sub list:\n%s", clips)
	}
	shows := testsupport.ReadFile(t, cfg.Paths.ShowsFile)
	if !strings.HasPrefix(shows, "#ShowList | ") || !strings.Contains(shows, "\nMonster\n") {
		t.Fatalf("unexpected show file:\n%s", shows)
	}

	reopened := testsupport.MustOpenDatabase(t, cfg)
	if got, want := reopened.Stats(), db.Stats(); got != want {
		t.Fatalf("stats changed across save: got %+v want %+v", got, want)
	}
	if reopened.Tags().Lookup("Setting") == nil {
		t.Fatal("tag group lost across save")
	}
}

func TestSaveRequiresBackingFiles(t *testing.T) {
	db := clipdb.New(logging.NewNop())
	if _, err := db.Save(); err == nil {
		t.Fatal("expected error for a database without config")
	}
}

func TestSaveFailsWhenLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutBackups())
	db := testsupport.MustOpenDatabase(t, cfg)

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if _, err := db.Save(); !errors.Is(err, clipdb.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestSavePrunesOldBackups(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBackupKeep(2))
	for _, stamp := range []string{"20200101_000000", "20200102_000000", "20200103_000000"} {
		if err := os.MkdirAll(filepath.Join(cfg.Paths.BackupDir, "backup_"+stamp), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	unrelated := filepath.Join(cfg.Paths.BackupDir, "keep-me")
	if err := os.MkdirAll(unrelated, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	db := testsupport.MustOpenDatabase(t, cfg)
	result, err := db.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(result.PrunedBackups) != 2 {
		t.Fatalf("expected 2 pruned backups, got %v", result.PrunedBackups)
	}

	backups, err := db.Backups()
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != 2 || filepath.Base(backups[0]) != "backup_20200103_000000" || backups[1] != result.BackupDir {
		t.Fatalf("unexpected remaining backups: %v", backups)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("unrelated directory removed: %v", err)
	}
}

func TestExportList(t *testing.T) {
	db := clipdb.New(logging.NewNop())
	b := bounds(t, "00:01:00-00:02:00")
	if _, err := db.AddClip("Trigun", 1, b, "Best: 2017/18"); err != nil {
		t.Fatalf("AddClip: %v", err)
	}

	dir := t.TempDir()
	path, err := db.ExportList("Best: 2017/18", dir)
	if err != nil {
		t.Fatalf("ExportList: %v", err)
	}
	if filepath.Base(path) != "Best- 2017-18.txt" {
		t.Fatalf("unexpected export file name %q", filepath.Base(path))
	}
	content := testsupport.ReadFile(t, path)
	if !strings.Contains(content, "List::Best: 2017/18\n{\n\n\t#Trigun\n\tTrigun[|]1[|]00:01:00-00:02:00[|]Spring[|]0[|][|][|][|]\n\n}\n") {
		t.Fatalf("unexpected export content:\n%s", content)
	}

	reloaded := clipdb.New(logging.NewNop())
	result, err := reloaded.LoadClips(path)
	if err != nil || result.Added != 1 {
		t.Fatalf("LoadClips export: result=%+v err=%v", result, err)
	}

	if _, err := db.ExportList("missing", dir); !errors.Is(err, clipdb.ErrUnknownList) {
		t.Fatalf("expected ErrUnknownList, got %v", err)
	}
}

func TestWriteShowsHeader(t *testing.T) {
	db := clipdb.New(logging.NewNop())
	db.AddShow("Trigun")
	var sb strings.Builder
	now := time.Date(2017, time.March, 4, 5, 6, 7, 0, time.UTC)
	if err := db.WriteShows(&sb, now); err != nil {
		t.Fatalf("WriteShows: %v", err)
	}
	if got, want := sb.String(), "#ShowList | 04 Mar 2017 05:06:07\nTrigun\n"; got != want {
		t.Fatalf("unexpected show file %q, want %q", got, want)
	}
}

func TestSaveKeepsMALExportAndCatalogue(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithShowsFile("animelist.xml"))
	export := `<myanimelist>
	<anime><series_title><![CDATA[Mushishi]]></series_title></anime>
	<anime><series_title><![CDATA[Trigun]]></series_title></anime>
</myanimelist>
`
	testsupport.WriteFile(t, cfg.Paths.ShowsFile, export)

	db := testsupport.MustOpenDatabase(t, cfg)
	if _, err := db.AddClip("Mushishi", 1, bounds(t, "00:01:00-00:02:00")); err != nil {
		t.Fatalf("AddClip: %v", err)
	}
	db.AddShow("Monster")
	if _, err := db.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := testsupport.ReadFile(t, cfg.Paths.ShowsFile); got != export {
		t.Fatalf("MAL export was rewritten:\n%s", got)
	}
	catalog := filepath.Join(cfg.Paths.DataDir, "animelist.txt")
	if got := testsupport.ReadFile(t, catalog); !strings.HasPrefix(got, "#ShowList | ") {
		t.Fatalf("expected show catalogue at %s, got %q", catalog, got)
	}

	reopened := testsupport.MustOpenDatabase(t, cfg)
	for _, show := range []string{"Mushishi", "Trigun", "Monster"} {
		if !reopened.HasShow(show) {
			t.Fatalf("show %q lost after save and reopen: %v", show, reopened.Shows())
		}
	}

	if err := os.Remove(cfg.Paths.ShowsFile); err != nil {
		t.Fatalf("remove export: %v", err)
	}
	withoutExport := testsupport.MustOpenDatabase(t, cfg)
	if !withoutExport.HasShow("Trigun") {
		t.Fatalf("catalogue alone should keep every show, got %v", withoutExport.Shows())
	}
}
