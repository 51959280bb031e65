package clip

import (
	"cmp"
	"slices"
)

// Clip is one excerpt of an episode plus the metadata the user attached.
type Clip struct {
	Show    string
	Episode int
	Bounds  TimeBound
	Season  Season
	Year    int
	Tags    []string
	Source  string
	Link    string
	Note    string
}

// New returns a clip with the identity fields set and the default season.
func New(show string, episode int, bounds TimeBound) *Clip {
	return &Clip{Show: show, Episode: episode, Bounds: bounds, Season: Spring}
}

// SameAs reports whether both clips name the same show, episode and bounds.
func (c *Clip) SameAs(other *Clip) bool {
	if c == nil || other == nil {
		return false
	}
	return c.Show == other.Show &&
		c.Episode == other.Episode &&
		c.Bounds == other.Bounds
}

// Matches reports whether the clip has the given episode and bounds.
func (c *Clip) Matches(episode int, bounds TimeBound) bool {
	return c.Episode == episode && c.Bounds == bounds
}

// Compare orders clips by episode, then start, then end. Show is ignored.
func Compare(a, b *Clip) int {
	if n := cmp.Compare(a.Episode, b.Episode); n != 0 {
		return n
	}
	if n := cmp.Compare(a.Bounds.Start, b.Bounds.Start); n != 0 {
		return n
	}
	return cmp.Compare(a.Bounds.End, b.Bounds.End)
}

// Before reports whether c sorts strictly before other within a show.
func (c *Clip) Before(other *Clip) bool {
	return Compare(c, other) < 0
}

// AddTags appends tags, skipping empty and already-present values.
func (c *Clip) AddTags(tags ...string) {
	for _, tag := range tags {
		if tag == "" || slices.Contains(c.Tags, tag) {
			continue
		}
		c.Tags = append(c.Tags, tag)
	}
}

// HasTag reports whether the clip carries tag.
func (c *Clip) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}
