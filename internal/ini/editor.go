// Package ini locates and mutates sections and numbered list entries in
// game rules files held by a document.Document.
//
// Sections start at a line whose first byte is '[' and run up to the
// next such line or the end of the document. List entries are lines
// starting with a digit, split on their first '='. Line indices change
// whenever lines are deleted, so every operation locates its targets
// afresh instead of trusting indices from an earlier call.
package ini

import (
	"errors"
	"fmt"
	"log/slog"

	"rulesedit/internal/document"
	"rulesedit/internal/logger"
	"rulesedit/pkg/section"
)

var (
	// ErrSectionNotFound is returned when no header carries the name.
	ErrSectionNotFound = errors.New("section not found")
	// ErrEntryNotFound is returned when no list entry matches a pattern.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrRange is returned for a line range outside the document.
	ErrRange = errors.New("line range out of bounds")
	// ErrBadPattern is returned when a value pattern does not compile.
	ErrBadPattern = errors.New("invalid value pattern")
)

// CommentPrefix deactivates a line.
const CommentPrefix = "; "

// Editor applies structural edits to one document.
type Editor struct {
	doc *document.Document
	log *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for not-found diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an editor mutating doc in place.
func New(doc *document.Document, opts ...Option) *Editor {
	e := &Editor{doc: doc, log: logger.L}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the buffer being edited.
func (e *Editor) Document() *document.Document {
	return e.doc
}

func (e *Editor) checkRange(r section.Range) error {
	if !e.doc.Valid(r) {
		return fmt.Errorf("%w: %s in %d lines", ErrRange, r, e.doc.Len())
	}
	return nil
}
