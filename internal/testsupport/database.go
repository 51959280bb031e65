package testsupport

import (
	"testing"

	"aniclip/internal/clipdb"
	"aniclip/internal/config"
	"aniclip/internal/logging"
)

// SampleClipFile is a small clip file with one sub list.
const SampleClipFile = `#ClipList | 01 Jan 2024 10:00:00
List::General
{

	#Cowboy Bebop
	Cowboy Bebop[|]5[|]00:10:00-00:11:30[|]Spring[|]1998[|]action|space[|][|][|]
	Cowboy Bebop[|]24[|]00:20:00-00:21:00[|]Spring[|]1998[|]sad[|][|][|]

	#Trigun
	Trigun[|]1[|]00:01:00-00:02:00[|]Spring[|]1998[|]action[|][|][|]

}

List::Favorites
{

	#Cowboy Bebop
	Cowboy Bebop[|]5[|]00:10:00-00:11:30[|]Spring[|]1998[|]action|space[|][|][|]

}

`

// MustOpenDatabase opens the database described by cfg with a no-op logger.
func MustOpenDatabase(t testing.TB, cfg *config.Config) *clipdb.Database {
	t.Helper()

	db, err := clipdb.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("clipdb.Open: %v", err)
	}
	return db
}
