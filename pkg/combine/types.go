package combine

// SkipReason explains why a retained file has no content in the document.
type SkipReason string

const (
	SkipBinary     SkipReason = "binary"
	SkipReadFailed SkipReason = "read error"
)

// SkippedFile is a retained file whose content was not emitted.
type SkippedFile struct {
	Path   string     // Relative path of the file.
	Reason SkipReason // Why it was skipped.
	Detail string     // Underlying error message, if any.
}

// Report summarizes a completed document write.
type Report struct {
	OutputPath   string        // Absolute path of the written document.
	Found        int           // Files discovered by the scan.
	Retained     int           // Files that survived filtering.
	Kept         int           // Files whose content was emitted.
	BytesWritten int64         // Bytes of file content emitted.
	Skipped      []SkippedFile // Files skipped for being binary or unreadable.
	Truncated    []string      // Relative paths of files cut at the byte limit.
}

// FileContent holds one processed file ready to be written.
type FileContent struct {
	Path      string     // Relative file path.
	Content   string     // Decoded, possibly truncated content.
	Language  string     // Fence language tag; empty when unknown.
	Truncated bool       // Content was cut at the byte limit.
	Skip      SkipReason // Non-empty when the file has no content.
	Detail    string     // Error detail for read failures.
	RawBytes  int        // Bytes read from disk.
}
