// Package document holds a configuration file as an ordered, mutable
// sequence of raw lines. Every line keeps its own terminator so that a
// buffer written back out is byte-identical to what was read, apart
// from the edits applied to it.
package document

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"rulesedit/pkg/section"
)

// Document is the line buffer. It is not safe for concurrent use.
type Document struct {
	lines    []string
	encoding string
}

// New builds a document from lines. The slice is copied.
func New(lines []string) *Document {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Document{lines: cp}
}

// FromString splits s into lines, keeping terminators.
func FromString(s string) *Document {
	return &Document{lines: splitLines(s)}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns line i including its terminator.
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// SetLine overwrites line i.
func (d *Document) SetLine(i int, s string) {
	d.lines[i] = s
}

// Lines returns a copy of the whole buffer.
func (d *Document) Lines() []string {
	cp := make([]string, len(d.lines))
	copy(cp, d.lines)
	return cp
}

// Slice returns a copy of the lines in r.
func (d *Document) Slice(r section.Range) []string {
	cp := make([]string, r.Len())
	copy(cp, d.lines[r.Start:r.End])
	return cp
}

// Valid reports whether r addresses lines inside the buffer.
func (d *Document) Valid(r section.Range) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= len(d.lines)
}

// Splice replaces the lines in r with repl. The result is always a
// freshly built slice of before + repl + after, so the caller's repl
// slice is never aliased. r must be Valid.
func (d *Document) Splice(r section.Range, repl []string) {
	out := make([]string, 0, len(d.lines)-r.Len()+len(repl))
	out = append(out, d.lines[:r.Start]...)
	out = append(out, repl...)
	out = append(out, d.lines[r.End:]...)
	d.lines = out
}

// Encoding returns the name of the encoding the document was read with.
func (d *Document) Encoding() string {
	if d.encoding == "" {
		return EncodingUTF8
	}
	return d.encoding
}

func (d *Document) String() string {
	return strings.Join(d.lines, "")
}

// Fingerprint returns a 16 hex character xxh3 digest of the buffer.
func (d *Document) Fingerprint() string {
	h := xxh3.New()
	for _, l := range d.lines {
		_, _ = h.WriteString(l)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// splitLines cuts s after every '\n'. A trailing fragment without a
// terminator becomes the last line.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// Terminator returns the line ending of l: "\r\n", "\n" or "".
func Terminator(l string) string {
	switch {
	case strings.HasSuffix(l, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(l, "\n"):
		return "\n"
	default:
		return ""
	}
}

// TrimTerminator strips the line ending returned by Terminator.
func TrimTerminator(l string) string {
	return l[:len(l)-len(Terminator(l))]
}
