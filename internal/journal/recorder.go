package journal

import (
	"regexp"
	"strings"

	"rulesedit/internal/clock"
	"rulesedit/internal/ini"
	"rulesedit/pkg/section"
)

// Recorder runs edits through an ini.Editor and appends a record for
// each one, including a snapshot of the lines it was about to change.
type Recorder struct {
	ed    *ini.Editor
	clock clock.Clock
	j     *Journal
}

// NewRecorder appends to j. A journal without a fingerprint is stamped
// with the editor's current buffer.
func NewRecorder(ed *ini.Editor, j *Journal, c clock.Clock) *Recorder {
	if c == nil {
		c = clock.RealClock{}
	}
	if j.Fingerprint == "" {
		j.Fingerprint = ed.Document().Fingerprint()
	}
	if j.Started.IsZero() {
		j.Started = c.Now()
	}
	return &Recorder{ed: ed, clock: c, j: j}
}

// Journal returns the journal being appended to.
func (r *Recorder) Journal() *Journal {
	return r.j
}

func (r *Recorder) add(rec Record, err error) error {
	rec.At = r.clock.Now()
	if err != nil {
		rec.Err = err.Error()
	}
	r.j.Records = append(r.j.Records, rec)
	return err
}

// capture locates name and snapshots its lines into rec.
func (r *Recorder) capture(rec *Record, name string) error {
	rng, err := r.ed.FindSectionRange(name)
	if err != nil {
		return err
	}
	rec.Range = rng
	rec.Removed = encodeSnapshot(r.ed.Document().Slice(rng))
	return nil
}

func (r *Recorder) RemoveSection(name, list string, level section.Level) error {
	return r.RemoveSectionOccurrence(name, 0, list, level)
}

// RemoveSectionOccurrence snapshots the section and, when list names
// one, the list entry that will be rewritten with it.
func (r *Recorder) RemoveSectionOccurrence(name string, nth int, list string, level section.Level) error {
	rec := Record{Op: OpRemoveSection, Section: name, List: list, Level: level.String()}
	rng, err := r.ed.FindSectionOccurrence(name, nth)
	if err != nil {
		return r.add(rec, err)
	}
	doc := r.ed.Document()
	rec.Range = rng
	lines := doc.Slice(rng)
	if list != "" {
		if lr, lerr := r.ed.FindSectionRange(list); lerr == nil {
			// An entry inside the section is already in the snapshot.
			if i, perr := r.ed.ListEntryPos(lr, regexp.QuoteMeta(name)); perr == nil && !rng.Contains(i) {
				rec.EntryLine = i
				lines = append(lines, doc.Line(i))
			}
		}
	}
	rec.Removed = encodeSnapshot(lines)
	return r.add(rec, r.ed.RemoveSectionOccurrence(name, nth, list, level))
}

func (r *Recorder) RemoveFromList(pattern, list string, level section.Level) error {
	rec := Record{Op: OpRemoveEntry, List: list, Pattern: pattern, Level: level.String()}
	err := r.capture(&rec, list)
	if err == nil {
		err = r.ed.RemoveFromList(pattern, list, level)
	}
	return r.add(rec, err)
}

func (r *Recorder) ReindexList(list string) error {
	rec := Record{Op: OpReindex, List: list}
	err := r.capture(&rec, list)
	if err == nil {
		err = r.ed.ReindexList(list)
	}
	return r.add(rec, err)
}

// RemoveAllComments snapshots every line holding a ';' before stripping.
func (r *Recorder) RemoveAllComments() int {
	doc := r.ed.Document()
	var commented []string
	for _, l := range doc.Lines() {
		if strings.Contains(l, ";") {
			commented = append(commented, l)
		}
	}
	rec := Record{
		Op:      OpStripComments,
		Range:   section.Range{Start: 0, End: doc.Len()},
		Removed: encodeSnapshot(commented),
	}
	n := r.ed.RemoveAllComments()
	_ = r.add(rec, nil)
	return n
}
