package journal

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"rulesedit/internal/document"
)

// Encoder and decoder are safe for concurrent use and costly to build.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// encodeSnapshot compresses lines into a printable string that can sit
// in a JSON value without escaping.
func encodeSnapshot(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	compressed := zstdEncoder.EncodeAll([]byte(strings.Join(lines, "")), nil)

	var encoded bytes.Buffer
	enc := ascii85.NewEncoder(&encoded)
	_, _ = enc.Write(compressed)
	_ = enc.Close()
	return encoded.String()
}

func decodeSnapshot(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	compressed, err := io.ReadAll(ascii85.NewDecoder(strings.NewReader(s)))
	if err != nil {
		return nil, fmt.Errorf("snapshot ascii85: %w", err)
	}
	raw, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot zstd: %w", err)
	}
	return document.FromString(string(raw)).Lines(), nil
}
