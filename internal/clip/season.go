package clip

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Season is the broadcast season a show aired in.
type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Seasons lists the valid seasons in calendar order.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// ParseSeason matches value case-insensitively. Unknown values become Spring.
func ParseSeason(value string) Season {
	canonical := Season(cases.Title(language.English).String(strings.TrimSpace(value)))
	switch canonical {
	case Spring, Summer, Fall, Winter:
		return canonical
	}
	return Spring
}
