package clip

import (
	"bufio"
	"fmt"
	"io"
	"slices"
)

// ShowList holds the clips of one show in episode/time order.
type ShowList struct {
	name  string
	clips []*Clip
}

// NewShowList returns an empty list for show.
func NewShowList(show string) *ShowList {
	return &ShowList{name: show}
}

// Name returns the show title.
func (s *ShowList) Name() string {
	return s.name
}

// Len returns the number of clips.
func (s *ShowList) Len() int {
	return len(s.clips)
}

// Clips returns the clips in order. The slice is a copy; the clips are shared.
func (s *ShowList) Clips() []*Clip {
	return slices.Clone(s.clips)
}

// Add inserts c in order unless an equal clip is already present.
func (s *ShowList) Add(c *Clip) bool {
	if c == nil {
		return false
	}
	for _, existing := range s.clips {
		if existing.SameAs(c) {
			return false
		}
	}
	s.insert(c)
	return true
}

// insert places c before the first clip it sorts before.
func (s *ShowList) insert(c *Clip) {
	idx := slices.IndexFunc(s.clips, func(existing *Clip) bool {
		return c.Before(existing)
	})
	if idx < 0 {
		s.clips = append(s.clips, c)
		return
	}
	s.clips = slices.Insert(s.clips, idx, c)
}

// Find returns the clip with the given episode and bounds, or nil.
func (s *ShowList) Find(episode int, bounds TimeBound) *Clip {
	for _, c := range s.clips {
		if c.Matches(episode, bounds) {
			return c
		}
	}
	return nil
}

// Remove drops the clip equal to c.
func (s *ShowList) Remove(c *Clip) bool {
	idx := slices.IndexFunc(s.clips, c.SameAs)
	if idx < 0 {
		return false
	}
	s.clips = slices.Delete(s.clips, idx, idx+1)
	return true
}

// WriteTo writes the show header and one indented clip line per clip.
func (s *ShowList) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	n, _ := fmt.Fprintf(bw, "\t#%s\n", s.name)
	total += int64(n)
	for _, c := range s.clips {
		n, _ = fmt.Fprintf(bw, "\t%s\n", c.FormatLine())
		total += int64(n)
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("write show %q: %w", s.name, err)
	}
	return total, nil
}
