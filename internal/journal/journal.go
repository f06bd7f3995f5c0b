// Package journal records the edits applied to a rules file so that a
// reviewer can see, per operation, which lines were touched and what
// they held before.
package journal

import (
	"time"

	"rulesedit/pkg/section"
)

// Operation names used in records.
const (
	OpRemoveSection = "remove-section"
	OpRemoveEntry   = "remove-entry"
	OpReindex       = "reindex"
	OpStripComments = "strip-comments"
)

// Record describes one applied (or failed) operation.
type Record struct {
	Op        string        `json:"op"`
	Section   string        `json:"section,omitempty"`
	List      string        `json:"list,omitempty"`
	Pattern   string        `json:"pattern,omitempty"`
	Level     string        `json:"level,omitempty"`
	Range     section.Range `json:"range"`                // Lines addressed before the edit
	Removed   string        `json:"removed,omitempty"`    // Compressed prior content of Range
	EntryLine int           `json:"entry_line,omitempty"` // List line also rewritten; its prior text ends Removed
	Err       string        `json:"error,omitempty"`
	At        time.Time     `json:"at"`
}

// Snapshot restores the lines the operation replaced or removed.
func (r *Record) Snapshot() ([]string, error) {
	return decodeSnapshot(r.Removed)
}

// Failed reports whether the operation returned an error.
func (r *Record) Failed() bool {
	return r.Err != ""
}

// Journal is the edit history of one source file.
type Journal struct {
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"` // Source buffer digest before any edit
	Output      string    `json:"output,omitempty"`
	Records     []Record  `json:"records"`
	Started     time.Time `json:"started"`
}

// UpdatedAt returns the time of the last record, or Started when there
// are none.
func (j *Journal) UpdatedAt() time.Time {
	if len(j.Records) == 0 {
		return j.Started
	}
	return j.Records[len(j.Records)-1].At
}

// Failures returns the records whose operation failed.
func (j *Journal) Failures() []Record {
	var out []Record
	for _, r := range j.Records {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}
