package ini

import "rulesedit/pkg/section"

// DeleteSegment removes the lines in r. Every later index shifts down by
// r.Len().
func (e *Editor) DeleteSegment(r section.Range) error {
	if err := e.checkRange(r); err != nil {
		return err
	}
	e.doc.Splice(r, nil)
	return nil
}

// CommentSegment prefixes every line in r with CommentPrefix. Indices do
// not move.
func (e *Editor) CommentSegment(r section.Range) error {
	if err := e.checkRange(r); err != nil {
		return err
	}
	for i := r.Start; i < r.End; i++ {
		e.doc.SetLine(i, CommentPrefix+e.doc.Line(i))
	}
	return nil
}

// ReplaceSegment swaps the lines in r for lines. When the lengths agree
// the lines are overwritten in place and no index moves.
func (e *Editor) ReplaceSegment(r section.Range, lines []string) error {
	if err := e.checkRange(r); err != nil {
		return err
	}
	if len(lines) == r.Len() {
		for j, l := range lines {
			e.doc.SetLine(r.Start+j, l)
		}
		return nil
	}
	e.doc.Splice(r, lines)
	return nil
}
