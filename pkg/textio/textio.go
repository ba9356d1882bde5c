// Package textio decodes legacy files whose encoding is not reliably UTF-8.
// The old site was authored over many years and a number of pages are
// Windows-1252 or Latin-1.
package textio

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Decode converts raw file bytes to a string. Valid UTF-8 passes through
// untouched. Otherwise the charset is detected and the bytes are decoded
// with it, falling back to Latin-1, which accepts any byte sequence.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	det := chardet.NewTextDetector()
	if best, err := det.DetectBest(data); err == nil && best != nil {
		if enc, err := htmlindex.Get(strings.ToLower(best.Charset)); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(decoded), nil
			}
		}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("could not decode with any supported encoding: %w", err)
	}
	return string(decoded), nil
}

// FirstLine returns the first line of already-decoded content, trimmed.
func FirstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line)
}
