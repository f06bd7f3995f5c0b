package ini

import (
	"fmt"
	"strings"

	"rulesedit/internal/document"
	"rulesedit/pkg/section"
)

// isHeader reports whether l opens a section.
func isHeader(l string) bool {
	return len(l) > 0 && l[0] == '['
}

// headerName returns the text between '[' and the first ']'. Without a
// closing bracket the rest of the line, minus its terminator, is used.
func headerName(l string) string {
	inner := document.TrimTerminator(l)[1:]
	if i := strings.IndexByte(inner, ']'); i >= 0 {
		return inner[:i]
	}
	return inner
}

// FindSectionRange returns the lines owned by the first section called
// name: its header through the line before the next header, or through
// the end of the document for the last section.
func (e *Editor) FindSectionRange(name string) (section.Range, error) {
	return e.FindSectionOccurrence(name, 0)
}

// FindSectionOccurrence is FindSectionRange for the nth header called
// name, counting from 0.
func (e *Editor) FindSectionOccurrence(name string, nth int) (section.Range, error) {
	n := e.doc.Len()
	seen := 0
	for i := 0; i < n; i++ {
		l := e.doc.Line(i)
		if !isHeader(l) || headerName(l) != name {
			continue
		}
		if seen < nth {
			seen++
			continue
		}
		end := n
		for j := i + 1; j < n; j++ {
			if isHeader(e.doc.Line(j)) {
				end = j
				break
			}
		}
		return section.Range{Start: i, End: end}, nil
	}
	e.log.Warn("section not found", "section", name, "occurrence", nth)
	if nth > 0 {
		return section.Range{}, fmt.Errorf("%w: %s (occurrence %d)", ErrSectionNotFound, name, nth)
	}
	return section.Range{}, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
}

// Sections lists every header in document order with the range it owns.
// Repeated names are listed once per header, numbered by Occurrence.
func (e *Editor) Sections() []section.Header {
	var headers []section.Header
	seen := make(map[string]int)
	for i := 0; i < e.doc.Len(); i++ {
		l := e.doc.Line(i)
		if !isHeader(l) {
			continue
		}
		if len(headers) > 0 {
			headers[len(headers)-1].Range.End = i
		}
		name := headerName(l)
		headers = append(headers, section.Header{
			Name:       name,
			Range:      section.Range{Start: i, End: e.doc.Len()},
			Occurrence: seen[name],
		})
		seen[name]++
	}
	return headers
}
