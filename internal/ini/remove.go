package ini

import (
	"fmt"
	"regexp"
	"strconv"

	"rulesedit/internal/document"
	"rulesedit/pkg/section"
)

// RemoveSection removes the section called name at the given level:
// LevelDelete and above delete its lines, lower levels comment them out.
// When list is not empty the entry naming the section is then removed
// from that list at the same level.
//
// The two steps are not atomic. If the section is handled but the list
// entry is missing, the section edit stays and the list error is
// returned.
func (e *Editor) RemoveSection(name, list string, level section.Level) error {
	return e.RemoveSectionOccurrence(name, 0, list, level)
}

// RemoveSectionOccurrence is RemoveSection for the nth header called
// name. The list entry is still the first one naming the section.
func (e *Editor) RemoveSectionOccurrence(name string, nth int, list string, level section.Level) error {
	r, err := e.FindSectionOccurrence(name, nth)
	if err != nil {
		return err
	}

	if level >= section.LevelDelete {
		err = e.DeleteSegment(r)
	} else {
		err = e.CommentSegment(r)
	}
	if err != nil {
		return err
	}
	e.log.Debug("section removed", "section", name, "level", level.String(), "range", r.String())

	if list == "" {
		return nil
	}
	if err := e.RemoveFromList(regexp.QuoteMeta(name), list, level); err != nil {
		return fmt.Errorf("section %s removed but list %s not updated: %w", name, list, err)
	}
	return nil
}

// RemoveFromList removes the first entry of list whose value starts with
// a match of pattern.
//
// LevelPlaceholder keeps the key and swaps the value for the next
// EMPTY<n> token, LevelComment comments the line out and LevelDelete
// deletes it. Deleting leaves a gap in the keys; call ReindexList to
// close it.
func (e *Editor) RemoveFromList(pattern, list string, level section.Level) error {
	r, err := e.FindSectionRange(list)
	if err != nil {
		return err
	}
	i, err := e.ListEntryPos(r, pattern)
	if err != nil {
		return err
	}

	line := e.doc.Line(i)
	switch {
	case level < section.LevelComment:
		n, err := e.CountEmpty(r)
		if err != nil {
			return err
		}
		entry, _ := splitEntry(line)
		e.doc.SetLine(i, entry.Key+"="+PlaceholderPrefix+strconv.Itoa(n)+document.Terminator(line))
	case level < section.LevelDelete:
		e.doc.SetLine(i, CommentPrefix+line)
	default:
		e.doc.Splice(section.Range{Start: i, End: i + 1}, nil)
	}
	e.log.Debug("list entry removed", "list", list, "pattern", pattern, "line", i, "level", level.String())
	return nil
}

// ReindexList renumbers the entries of list as 0, 1, 2, ... in document
// order. The header, comments, blank lines and digit-led lines without
// '=' are kept as they are and do not take a number.
func (e *Editor) ReindexList(list string) error {
	r, err := e.FindSectionRange(list)
	if err != nil {
		return err
	}
	old := e.doc.Slice(r)
	lines := make([]string, 0, len(old))
	lines = append(lines, old[0])

	j := 0
	for _, l := range old[1:] {
		if isEntry(l) {
			if entry, ok := splitEntry(l); ok {
				l = strconv.Itoa(j) + "=" + entry.Value + document.Terminator(l)
				j++
			}
		}
		lines = append(lines, l)
	}
	return e.ReplaceSegment(r, lines)
}
