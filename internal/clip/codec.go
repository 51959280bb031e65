package clip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldSeparator splits the fields of a clip line.
const FieldSeparator = "[|]"

const (
	lineFields   = 9
	tagSeparator = "|"
)

// ErrInvalidLine reports a clip line that cannot be parsed.
var ErrInvalidLine = errors.New("invalid clip line")

// FormatLine serializes the clip as
// show[|]ep[|]start-end[|]season[|]year[|]tags[|]source[|]link[|]note.
func (c *Clip) FormatLine() string {
	fields := []string{
		c.Show,
		strconv.Itoa(c.Episode),
		c.Bounds.String(),
		string(c.Season),
		strconv.Itoa(c.Year),
		strings.Join(c.Tags, tagSeparator),
		c.Source,
		c.Link,
		c.Note,
	}
	return strings.Join(fields, FieldSeparator)
}

// String implements fmt.Stringer with a short human label.
func (c *Clip) String() string {
	return fmt.Sprintf("%s #%d %s", c.Show, c.Episode, c.Bounds)
}

// MarshalText implements encoding.TextMarshaler using the clip line format.
func (c *Clip) MarshalText() ([]byte, error) {
	return []byte(c.FormatLine()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseLine.
func (c *Clip) UnmarshalText(text []byte) error {
	parsed, err := ParseLine(string(text))
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// ParseLine parses one clip line. Unknown seasons fall back to Spring; an
// empty year is zero.
func ParseLine(line string) (*Clip, error) {
	fields := strings.Split(strings.TrimSpace(line), FieldSeparator)
	if len(fields) != lineFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidLine, lineFields, len(fields))
	}

	episode, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: episode %q is not a number", ErrInvalidLine, fields[1])
	}
	bounds, err := ParseTimeBound(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLine, err)
	}

	year := 0
	if raw := strings.TrimSpace(fields[4]); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: year %q is not a number", ErrInvalidLine, fields[4])
		}
	}

	c := New(fields[0], episode, bounds)
	c.Season = ParseSeason(fields[3])
	c.Year = year
	if fields[5] != "" {
		c.AddTags(strings.Split(fields[5], tagSeparator)...)
	}
	c.Source = fields[6]
	c.Link = fields[7]
	c.Note = fields[8]
	return c, nil
}
