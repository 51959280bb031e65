package clipdb_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aniclip/internal/clipdb"
	"aniclip/internal/logging"
	"aniclip/internal/testsupport"
)

func TestReadClipsParsesListBlocks(t *testing.T) {
	db := clipdb.New(logging.NewNop())
	result, err := db.ReadClips(strings.NewReader(testsupport.SampleClipFile))
	if err != nil {
		t.Fatalf("ReadClips: %v", err)
	}
	if result.Added != 4 || result.Rejected != 0 || result.Lists != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if db.MainList().Len() != 3 {
		t.Fatalf("expected 3 unique clips, got %d", db.MainList().Len())
	}
	if diff := cmp.Diff([]string{"Favorites"}, listNames(db.Lists())); diff != "" {
		t.Fatalf("unexpected lists (-want +got):\n%s", diff)
	}
	if db.List("Favorites").Len() != 1 {
		t.Fatalf("expected one favorite, got %d", db.List("Favorites").Len())
	}
}

func TestReadClipsHandlesMalformedInput(t *testing.T) {
	input := strings.Join([]string{
		"Loose[|]1[|]00:00:01-00:00:02[|][|][|][|][|][|]",
		"List::A",
		"{",
		"List::B",
		"A Show[|]1[|]00:00:01-00:00:02[|][|][|][|][|][|]",
		"not a clip",
		"}",
	}, "\n")

	db := clipdb.New(logging.NewNop())
	result, err := db.ReadClips(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadClips: %v", err)
	}
	if result.Added != 2 || result.Rejected != 1 || result.Lists != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if db.List("B") != nil {
		t.Fatal("nested list header must be ignored")
	}
	if l := db.List("A"); l == nil || l.Len() != 1 {
		t.Fatalf("expected list A with one clip, got %v", l)
	}
}

func TestLoadShows(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "shows.txt")
	testsupport.WriteLines(t, txt, "#ShowList | 01 Jan 2024 10:00:00", "  Trigun  ", "", "Monster", "Trigun")

	xmlPath := filepath.Join(dir, "animelist.xml")
	testsupport.WriteFile(t, xmlPath, `<?xml version="1.0" encoding="UTF-8" ?>
<myanimelist>
	<myinfo><user_name>someone</user_name></myinfo>
	<anime>
		<series_animedb_id>1</series_animedb_id>
		<series_title><![CDATA[Cowboy Bebop]]></series_title>
	</anime>
	<anime>
		<series_title><![CDATA[Monster]]></series_title>
	</anime>
	<anime>
		<series_title><![CDATA[Kaguya-sama wa Kokurasetai: Tensai-tachi no Renai Zunousen]]></series_title>
	</anime>
</myanimelist>
`)

	db := clipdb.New(logging.NewNop())
	added, err := db.LoadShows(txt)
	if err != nil || added != 2 {
		t.Fatalf("LoadShows txt: added=%d err=%v", added, err)
	}
	added, err = db.LoadShows(xmlPath)
	if err != nil || added != 2 {
		t.Fatalf("LoadShows xml: added=%d err=%v", added, err)
	}
	want := []string{"Trigun", "Monster", "Cowboy Bebop", "Kaguya-sama wa Kokurasetai: Tensai-tachi no Renai Zunousen"}
	if diff := cmp.Diff(want, db.Shows()); diff != "" {
		t.Fatalf("unexpected shows (-want +got):\n%s", diff)
	}

	if _, err := db.LoadShows(filepath.Join(dir, "shows.csv")); !errors.Is(err, clipdb.ErrUnsupportedShowFile) {
		t.Fatalf("expected ErrUnsupportedShowFile, got %v", err)
	}
}

func TestOpenToleratesMissingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDatabase(t, cfg)
	if db.MainList().Len() != 0 || len(db.Shows()) != 0 {
		t.Fatal("expected an empty database")
	}
}

func TestOpenLoadsAllFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ClipsFile, testsupport.SampleClipFile)
	testsupport.WriteLines(t, cfg.Paths.ShowsFile, "Monster")
	testsupport.WriteLines(t, cfg.Paths.TagsFile, "name=Mood:tags=sad|happy")

	db := testsupport.MustOpenDatabase(t, cfg)
	if diff := cmp.Diff([]string{"Monster", "Cowboy Bebop", "Trigun"}, db.Shows()); diff != "" {
		t.Fatalf("unexpected shows (-want +got):\n%s", diff)
	}
	mood := db.Tags().Lookup("Mood")
	if mood == nil {
		t.Fatal("expected Mood tag group")
	}
	if diff := cmp.Diff([]string{"happy", "sad"}, mood.Tags()); diff != "" {
		t.Fatalf("unexpected Mood tags (-want +got):\n%s", diff)
	}
	if db.MainList().Len() != 3 {
		t.Fatalf("expected 3 clips, got %d", db.MainList().Len())
	}
}
