package clipdb

import "aniclip/internal/textutil"

// suggestionThreshold is the minimum cosine similarity for a show suggestion.
const suggestionThreshold = 0.3

// SuggestShows returns up to limit known shows whose titles resemble name,
// best match first.
func (db *Database) SuggestShows(name string, limit int) []string {
	matches := textutil.Rank(name, db.shows, suggestionThreshold, limit)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Value)
	}
	return out
}
