package ini

import (
	"strings"
	"unicode"

	"rulesedit/internal/document"
	"rulesedit/pkg/section"
)

// RemoveAllComments deletes every line starting with ';' and cuts any
// other line at its first ';', trimming trailing whitespace. It reports
// how many lines were removed or changed.
//
// The walk runs from the last line to the first so that deleting a line
// only moves lines that were already visited.
func (e *Editor) RemoveAllComments() int {
	changed := 0
	for i := e.doc.Len() - 1; i >= 0; i-- {
		l := e.doc.Line(i)
		if l == "" {
			continue
		}
		if l[0] == ';' {
			e.doc.Splice(section.Range{Start: i, End: i + 1}, nil)
			changed++
			continue
		}
		head, _, found := strings.Cut(l, ";")
		if !found {
			continue
		}
		term := "\n"
		if document.Terminator(l) == "\r\n" {
			term = "\r\n"
		}
		e.doc.SetLine(i, strings.TrimRightFunc(head, unicode.IsSpace)+term)
		changed++
	}
	return changed
}
