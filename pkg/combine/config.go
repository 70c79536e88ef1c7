// File: pkg/combine/config.go
package combine

import "time"

// Defaults applied when an Arguments field is left at its zero value.
const (
	DefaultOutput   = "copyfiles.txt"
	DefaultMaxBytes = 100_000
)

// Arguments holds the resolved caller configuration for one pipeline run.
type Arguments struct {
	Root              string // Project root to scan.
	Output            string // Destination path for the generated document.
	ExtraPatternsFile string // Optional file with extra ignore patterns, one per line.
	MaxBytes          int    // Maximum bytes of content per file; larger files are truncated.
	Verbose           bool   // If true, emits progress and skip notices to the logger.
}

// withDefaults returns a copy of args with empty fields filled in.
func (args Arguments) withDefaults() Arguments {
	if args.Root == "" {
		args.Root = "."
	}
	if args.Output == "" {
		args.Output = DefaultOutput
	}
	if args.MaxBytes <= 0 {
		args.MaxBytes = DefaultMaxBytes
	}
	return args
}

// WriteOptions controls how WriteDocument renders the output document.
type WriteOptions struct {
	MaxBytes int              // Content cap per file; non-positive means DefaultMaxBytes.
	Verbose  bool             // Emit per-file diagnostics.
	Version  string           // Version shown in the banner; empty means pkg/version.
	Now      func() time.Time // Clock for the banner timestamp; nil means time.Now.
}
