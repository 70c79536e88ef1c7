package combine

import (
	"io"
	"os"
)

// ProcessSingleFile reads up to maxBytes+1 bytes of filePath and classifies
// the result. Read failures and binary content are reported through Skip
// rather than as errors so one bad file never aborts a run.
func ProcessSingleFile(filePath, relPath string, maxBytes int) FileContent {
	content := FileContent{Path: relPath}

	raw, err := readPrefix(filePath, int64(maxBytes)+1)
	if err != nil {
		content.Skip = SkipReadFailed
		content.Detail = err.Error()
		return content
	}
	content.RawBytes = len(raw)

	if isBinary(raw) {
		content.Skip = SkipBinary
		return content
	}

	text := decodeLossy(raw)
	if len(raw) > maxBytes {
		text = truncateRunes(text, maxBytes)
		content.Truncated = true
	}
	content.Content = text
	content.Language = languageFor(relPath)
	return content
}

// readPrefix returns at most limit bytes from the start of the file. The
// handle is closed before returning.
func readPrefix(filePath string, limit int64) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, limit))
}
