package tags

import (
	"log/slog"
	"slices"

	"aniclip/internal/logging"
)

// Group is a named, ordered set of tags.
type Group struct {
	name   string
	tags   []string
	logger *slog.Logger
}

// NewGroup returns an empty group. A nil logger discards output.
func NewGroup(name string, logger *slog.Logger) *Group {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Group{name: name, logger: logger}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Tags returns a copy of the tags in their current order.
func (g *Group) Tags() []string {
	return slices.Clone(g.tags)
}

// Len returns the number of tags in the group.
func (g *Group) Len() int {
	return len(g.tags)
}

// Contains reports whether tag is present. Matching is case-sensitive.
func (g *Group) Contains(tag string) bool {
	return slices.Contains(g.tags, tag)
}

// AddTag appends tag unless it is empty or already present.
func (g *Group) AddTag(tag string) bool {
	if tag == "" || g.Contains(tag) {
		return false
	}
	g.tags = append(g.tags, tag)
	return true
}

// AddTags appends tags, then drops duplicates (keeping the first occurrence)
// and empty strings.
func (g *Group) AddTags(tags []string) {
	merged := append(g.tags, tags...)
	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, tag := range merged {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	g.tags = out
}

// RemoveTag removes the first occurrence of tag.
func (g *Group) RemoveTag(tag string) bool {
	idx := slices.Index(g.tags, tag)
	if idx < 0 {
		return false
	}
	g.tags = slices.Delete(g.tags, idx, idx+1)
	return true
}

// Merge adds every tag of other to g and returns how many were new.
func (g *Group) Merge(other *Group) int {
	if other == nil {
		return 0
	}
	added := 0
	for _, tag := range other.tags {
		if g.AddTag(tag) {
			added++
		}
	}
	g.logger.Info("merged tag group",
		logging.String("group", g.name),
		logging.String("source_group", other.name),
		logging.Int("added", added),
	)
	return added
}

// Sort orders the tags naturally. Equal tags keep their relative order.
func (g *Group) Sort() {
	SortStrings(g.tags)
}
