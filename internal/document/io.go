package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnavailable wraps every failure to read a source or create a target.
var ErrUnavailable = errors.New("file unavailable")

// Supported encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
	EncodingUTF16       = "utf-16"
)

// Options controls how a document is decoded.
type Options struct {
	// Encoding of the source text. Empty means UTF-8. The same encoding
	// is used again by Write.
	Encoding string
}

// NormalizeEncoding maps an encoding name or alias to its canonical name.
func NormalizeEncoding(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252", "win1252":
		return EncodingWindows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return EncodingLatin1, nil
	case "utf-16", "utf16", "utf-16le":
		return EncodingUTF16, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", name)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	canonical, err := NormalizeEncoding(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case EncodingWindows1252:
		return charmap.Windows1252, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	default:
		return encoding.Nop, nil
	}
}

// Read decodes r into a document. Gzip-compressed input is detected by
// its magic bytes and decompressed first.
func Read(r io.Reader, opts Options) (*Document, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	canonical, _ := NormalizeEncoding(opts.Encoding)

	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	decoded, err := io.ReadAll(transform.NewReader(src, enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s text: %w", canonical, err)
	}

	return &Document{lines: splitLines(string(decoded)), encoding: canonical}, nil
}

// Load reads the file at path.
func Load(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer f.Close()

	doc, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}
	return doc, nil
}

// WriteTo encodes the buffer to w in the document's encoding.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	enc, err := lookupEncoding(d.encoding)
	if err != nil {
		return 0, err
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	var n int64
	for _, l := range d.lines {
		m, err := io.WriteString(tw, l)
		n += int64(m)
		if err != nil {
			return n, fmt.Errorf("failed to encode line: %w", err)
		}
	}
	return n, tw.Close()
}

// Write creates a new file at path holding the buffer. An empty path is
// a no-op. An existing file is never overwritten.
func (d *Document) Write(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
