package ignore

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrNotText is returned when a pattern file is not valid UTF-8.
var ErrNotText = errors.New("pattern file is not valid UTF-8 text")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadLines reads a pattern file and returns its lines. The file handle is
// released before ReadLines returns.
func ReadLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, errors.Errorf("%s: %w", path, ErrNotText)
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

// CompileFile reads and compiles a pattern file. A missing file yields an
// empty Spec.
func CompileFile(path string) (*Spec, error) {
	lines, err := ReadLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Compile(), nil
		}
		return nil, err
	}
	return Compile(lines...), nil
}

// StripComments drops blank lines and '#' comments and trims the rest.
func StripComments(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}
