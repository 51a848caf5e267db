package transkey

import (
	"strings"
	"unicode/utf8"
)

// Position is a 0-based line and column in a source file.
// Column counts Unicode code points from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

var quotes = [...]string{"'", `"`, "`"}

// Locate finds the first line of src that contains the terminal segment of
// path wrapped in quotes and returns the position of the opening quote.
//
// Only the last segment is searched for, so a key name repeated at another
// nesting level can produce a plausible but wrong position. The resolved value
// is unaffected; only cursor placement is.
func Locate(src, path string) (Position, error) {
	name := lastSegment(path)
	if name == "" {
		return Position{}, ErrNotFound
	}

	needles := make([]string, len(quotes))
	for i, q := range quotes {
		needles[i] = q + name + q
	}

	for i, line := range strings.Split(src, "\n") {
		best := -1
		for _, needle := range needles {
			if idx := strings.Index(line, needle); idx >= 0 && (best < 0 || idx < best) {
				best = idx
			}
		}
		if best >= 0 {
			return Position{Line: i, Column: utf8.RuneCountInString(line[:best])}, nil
		}
	}

	return Position{}, ErrNotFound
}
