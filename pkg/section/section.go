package section

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a half-open interval of document lines, [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether line index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Header is a bracketed section header together with the lines it owns.
type Header struct {
	Name       string `json:"name"`
	Range      Range  `json:"range"`
	Occurrence int    `json:"occurrence,omitempty"` // Earlier headers with the same name
}

// Entry is a numerically keyed list line split on its first '='.
type Entry struct {
	Key   string
	Value string
}

// Level controls how aggressively a section or list entry is removed.
type Level int

const (
	// LevelPlaceholder comments the section out and keeps the list slot
	// by rewriting its value to an EMPTY<n> token.
	LevelPlaceholder Level = 0
	// LevelComment comments both the section and the list entry out.
	LevelComment Level = 1
	// LevelDelete physically removes the lines. Any level above it
	// behaves the same.
	LevelDelete Level = 2
)

func (l Level) String() string {
	switch {
	case l <= LevelPlaceholder:
		return "placeholder"
	case l == LevelComment:
		return "comment"
	default:
		return "delete"
	}
}

// ParseLevel accepts a level name or its number.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "@")))
	switch s {
	case "placeholder", "empty":
		return LevelPlaceholder, nil
	case "comment":
		return LevelComment, nil
	case "delete":
		return LevelDelete, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid removal level %q: expected placeholder, comment, delete or a number >= 0", s)
	}
	return Level(n), nil
}
