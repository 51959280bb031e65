package tags

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"aniclip/internal/logging"
)

// DefaultGroup receives every tag, including those filed under a named group.
const DefaultGroup = "General"

// ErrInvalidLine reports a tag file line that is not of the form
// name=<group>:tags=<tags>.
var ErrInvalidLine = errors.New("invalid tag line")

// Manager owns the tag groups of a database.
type Manager struct {
	groups []*Group
	logger *slog.Logger
}

// NewManager returns a manager with no groups. Groups are created on demand.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{logger: logging.NewComponentLogger(logger, "tags")}
}

// Groups returns the groups in their current order.
func (m *Manager) Groups() []*Group {
	return slices.Clone(m.groups)
}

// ContainsGroup reports whether a group named name exists.
func (m *Manager) ContainsGroup(name string) bool {
	return m.Lookup(name) != nil
}

// Lookup returns the named group or nil.
func (m *Manager) Lookup(name string) *Group {
	for _, g := range m.groups {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

// Group returns the named group, creating it when missing.
func (m *Manager) Group(name string) *Group {
	if g := m.Lookup(name); g != nil {
		return g
	}
	g, _ := m.AddGroup(name)
	return g
}

// AddGroup creates a group. It returns the existing group and false when the
// name is already taken.
func (m *Manager) AddGroup(name string) (*Group, bool) {
	if g := m.Lookup(name); g != nil {
		return g, false
	}
	g := NewGroup(name, m.logger)
	m.groups = append(m.groups, g)
	return g, true
}

// AddTag files tag under group. An empty group means DefaultGroup; a named
// group also mirrors the tag into DefaultGroup.
func (m *Manager) AddTag(tag, group string) bool {
	if group == "" {
		group = DefaultGroup
	} else {
		m.Group(DefaultGroup).AddTag(tag)
	}
	return m.Group(group).AddTag(tag)
}

// AddTags files tags under group with the same rules as AddTag.
func (m *Manager) AddTags(tags []string, group string) {
	if group == "" {
		group = DefaultGroup
	} else {
		m.Group(DefaultGroup).AddTags(tags)
	}
	m.Group(group).AddTags(tags)
}

// RemoveTag removes tag from group, or from every group when group is empty.
// It reports whether anything was removed.
func (m *Manager) RemoveTag(tag, group string) bool {
	if group != "" {
		g := m.Lookup(group)
		return g != nil && g.RemoveTag(tag)
	}
	removed := false
	for _, g := range m.groups {
		if g.RemoveTag(tag) {
			removed = true
		}
	}
	return removed
}

// Sort orders groups by name and then the tags inside every group.
func (m *Manager) Sort() {
	slices.SortStableFunc(m.groups, func(a, b *Group) int {
		return Compare(a.Name(), b.Name())
	})
	for _, g := range m.groups {
		g.Sort()
	}
}

// ReadLine parses one tag file line. Lines naming no group or carrying no
// tags are accepted and ignored.
func (m *Manager) ReadLine(line string) error {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		logging.WarnWithContext(m.logger, "invalid tag line skipped", "tag_line_invalid",
			logging.String("line", line),
			logging.String(logging.FieldErrorHint, "expected name=<group>:tags=<a>|<b>"),
			logging.String(logging.FieldImpact, "tags on this line were not loaded"),
		)
		return fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}

	name, ok := strings.CutPrefix(parts[0], "name=")
	if !ok {
		name = ""
	}
	var tagList []string
	if raw, ok := strings.CutPrefix(parts[1], "tags="); ok && raw != "" {
		tagList = strings.Split(raw, "|")
	}
	if name == "" || len(tagList) == 0 {
		return nil
	}

	_, created := m.AddGroup(name)
	m.AddTags(tagList, name)
	m.logger.Debug("loaded tag group",
		logging.String("group", name),
		logging.Bool("created", created),
		logging.Int("tags", m.Group(name).Len()),
	)
	return nil
}
