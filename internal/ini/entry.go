package ini

import (
	"fmt"
	"regexp"
	"strings"

	"rulesedit/internal/document"
	"rulesedit/pkg/section"
)

// placeholderPattern matches a whole EMPTY<n> value.
var placeholderPattern = regexp.MustCompile(`^EMPTY\d*$`)

// PlaceholderPrefix starts every placeholder value.
const PlaceholderPrefix = "EMPTY"

// isEntry reports whether l is a numerically keyed list line.
func isEntry(l string) bool {
	return len(l) > 0 && l[0] >= '0' && l[0] <= '9'
}

// splitEntry cuts an entry line on its first '='. The value excludes the
// line terminator. ok is false when the line has no '='.
func splitEntry(l string) (e section.Entry, ok bool) {
	key, value, ok := strings.Cut(document.TrimTerminator(l), "=")
	if !ok {
		return section.Entry{}, false
	}
	return section.Entry{Key: key, Value: value}, true
}

// compileValuePattern anchors pattern at the start of the value so that a
// match means "the value begins with pattern".
func compileValuePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPattern, err)
	}
	return re, nil
}

// ListEntryPos returns the index of the first entry in r whose value
// starts with a match of pattern.
func (e *Editor) ListEntryPos(r section.Range, pattern string) (int, error) {
	if err := e.checkRange(r); err != nil {
		return -1, err
	}
	re, err := compileValuePattern(pattern)
	if err != nil {
		return -1, err
	}
	for i := r.Start; i < r.End; i++ {
		l := e.doc.Line(i)
		if !isEntry(l) {
			continue
		}
		entry, ok := splitEntry(l)
		if ok && re.MatchString(entry.Value) {
			return i, nil
		}
	}
	e.log.Warn("entry not found", "pattern", pattern, "range", r.String())
	return -1, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, pattern, r)
}

// CountEmpty counts the entries in r whose value is a placeholder token.
func (e *Editor) CountEmpty(r section.Range) (int, error) {
	if err := e.checkRange(r); err != nil {
		return 0, err
	}
	n := 0
	for i := r.Start; i < r.End; i++ {
		l := e.doc.Line(i)
		if !isEntry(l) {
			continue
		}
		if entry, ok := splitEntry(l); ok && placeholderPattern.MatchString(entry.Value) {
			n++
		}
	}
	return n, nil
}

// Entries returns the well-formed entries of r in document order.
func (e *Editor) Entries(r section.Range) ([]section.Entry, error) {
	if err := e.checkRange(r); err != nil {
		return nil, err
	}
	var entries []section.Entry
	for i := r.Start; i < r.End; i++ {
		l := e.doc.Line(i)
		if !isEntry(l) {
			continue
		}
		if entry, ok := splitEntry(l); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
