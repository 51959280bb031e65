package clip

import (
	"fmt"
	"strings"
)

// Timestamp is an offset into an episode with one-second resolution.
type Timestamp int

const maxTimestamp = Timestamp(24*60*60 - 1)

// NewTimestamp builds a timestamp from its parts.
func NewTimestamp(hours, minutes, seconds int) Timestamp {
	return Timestamp(hours*3600 + minutes*60 + seconds)
}

// ParseTimestamp parses hh:mm:ss with exactly two digits per field. Hours
// range 0-23, minutes and seconds 0-59.
func ParseTimestamp(value string) (Timestamp, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("timestamp %q: expected hh:mm:ss", value)
	}
	limits := [3]int{23, 59, 59}
	var fields [3]int
	for i, part := range parts {
		if len(part) != 2 || !isDigit(part[0]) || !isDigit(part[1]) {
			return 0, fmt.Errorf("timestamp %q: field %q is not two digits", value, part)
		}
		n := int(part[0]-'0')*10 + int(part[1]-'0')
		if n > limits[i] {
			return 0, fmt.Errorf("timestamp %q: field %q out of range", value, part)
		}
		fields[i] = n
	}
	return NewTimestamp(fields[0], fields[1], fields[2]), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// String formats the timestamp as hh:mm:ss.
func (t Timestamp) String() string {
	if t < 0 {
		t = 0
	}
	if t > maxTimestamp {
		t = maxTimestamp
	}
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// TimeBound is the start and end of a clip within its episode.
type TimeBound struct {
	Start Timestamp
	End   Timestamp
}

// ParseTimeBound parses hh:mm:ss-hh:mm:ss.
func ParseTimeBound(value string) (TimeBound, error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 2 {
		return TimeBound{}, fmt.Errorf("time bound %q: expected start-end", value)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return TimeBound{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return TimeBound{}, err
	}
	return TimeBound{Start: start, End: end}, nil
}

// Valid reports whether the bound does not end before it starts.
func (b TimeBound) Valid() bool {
	return b.End >= b.Start
}

// Duration returns the clip length in seconds.
func (b TimeBound) Duration() int {
	return int(b.End - b.Start)
}

func (b TimeBound) String() string {
	return b.Start.String() + "-" + b.End.String()
}
