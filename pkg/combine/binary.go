// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// isBinary reports whether the sample contains a NUL byte.
func isBinary(sample []byte) bool {
	return bytes.IndexByte(sample, 0) >= 0
}

// decodeLossy decodes data as UTF-8, replacing every byte that is not part of
// a valid sequence with U+FFFD.
func decodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var builder strings.Builder
	builder.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			builder.WriteRune(utf8.RuneError)
			data = data[1:]
			continue
		}
		builder.Write(data[:size])
		data = data[size:]
	}
	return builder.String()
}

// truncateRunes keeps at most limit characters of text.
func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
