package tags

import (
	"slices"
	"strings"
	"unicode"
)

// Compare orders two tags naturally and returns -1, 0 or +1.
//
// The common prefix is skipped case-insensitively. If one string runs out the
// shorter sorts first. At the first difference, digit runs compare by numeric
// value, a non-digit sorts before a digit, and two non-digits compare by their
// lower-cased rune.
func Compare(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	i := 0
	for i < len(ra) && i < len(rb) && unicode.ToLower(ra[i]) == unicode.ToLower(rb[i]) {
		i++
	}
	if i >= len(ra) || i >= len(rb) {
		return compareInts(len(ra), len(rb))
	}

	na, nb := digitRun(ra[i:]), digitRun(rb[i:])
	switch {
	case na != "" && nb != "":
		return compareNumbers(na, nb)
	case na != "":
		return 1
	case nb != "":
		return -1
	}
	return compareInts(int(unicode.ToLower(ra[i])), int(unicode.ToLower(rb[i])))
}

// Less reports whether a sorts before b under Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// SortStrings stable-sorts values in natural order.
func SortStrings(values []string) {
	slices.SortStableFunc(values, Compare)
}

func digitRun(r []rune) string {
	end := 0
	for end < len(r) && isDigit(r[end]) {
		end++
	}
	return string(r[:end])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// compareNumbers compares two ASCII digit strings by value without parsing,
// so arbitrarily long runs never overflow.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return compareInts(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
