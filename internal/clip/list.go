package clip

import (
	"bufio"
	"fmt"
	"io"
	"slices"
)

// ListPrefix opens a list block in the clip file.
const ListPrefix = "List::"

// List is a named collection of clips grouped by show.
type List struct {
	name    string
	visible bool
	shows   []*ShowList
}

// NewList returns an empty, visible list.
func NewList(name string) *List {
	return &List{name: name, visible: true}
}

// Name returns the list name.
func (l *List) Name() string {
	return l.name
}

// Visible reports the display flag. Lists start visible.
func (l *List) Visible() bool {
	return l.visible
}

// SetVisible toggles the display flag.
func (l *List) SetVisible(visible bool) {
	l.visible = visible
}

// Shows returns the show lists in first-seen order.
func (l *List) Shows() []*ShowList {
	return slices.Clone(l.shows)
}

// Show returns the show list named show, or nil.
func (l *List) Show(show string) *ShowList {
	for _, s := range l.shows {
		if s.Name() == show {
			return s
		}
	}
	return nil
}

// Len returns the total number of clips across all shows.
func (l *List) Len() int {
	total := 0
	for _, s := range l.shows {
		total += s.Len()
	}
	return total
}

// Clips flattens the list in show order.
func (l *List) Clips() []*Clip {
	out := make([]*Clip, 0, l.Len())
	for _, s := range l.shows {
		out = append(out, s.clips...)
	}
	return out
}

// Add files c under its show, creating the show list on first use.
func (l *List) Add(c *Clip) bool {
	if c == nil {
		return false
	}
	show := l.Show(c.Show)
	if show == nil {
		show = NewShowList(c.Show)
		l.shows = append(l.shows, show)
	}
	return show.Add(c)
}

// Remove drops c from its show list. Show lists left empty are removed.
func (l *List) Remove(c *Clip) bool {
	if c == nil {
		return false
	}
	show := l.Show(c.Show)
	if show == nil || !show.Remove(c) {
		return false
	}
	if show.Len() == 0 {
		l.shows = slices.DeleteFunc(l.shows, func(s *ShowList) bool { return s == show })
	}
	return true
}

// WriteTo writes the list as a List:: block.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	n, _ := fmt.Fprintf(bw, "%s%s\n{\n\n", ListPrefix, l.name)
	total += int64(n)
	for _, s := range l.shows {
		written, err := s.WriteTo(bw)
		total += written
		if err != nil {
			return total, err
		}
		n, _ = bw.WriteString("\n")
		total += int64(n)
	}
	n, _ = bw.WriteString("}\n\n")
	total += int64(n)
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("write list %q: %w", l.name, err)
	}
	return total, nil
}
