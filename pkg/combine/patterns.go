// File: pkg/combine/patterns.go
package combine

import "copyfiles/pkg/ignore"

// GitIgnoreFileName is the VCS ignore file read from the project root.
const GitIgnoreFileName = ".gitignore"

// tempFilePattern names the scratch file the writer renames over the output.
const tempFilePattern = ".copyfiles-*.tmp"

// DefaultPatterns are always excluded, on top of .gitignore and extra patterns.
var DefaultPatterns = []string{
	// tool artifacts
	DefaultOutput,
	"copyfiles.py",
	tempFilePattern,

	// secrets
	".env",

	// dependency and cache directories
	"node_modules/",
	"__pycache__/",
	".venv/",
	".mypy_cache/",
	".pytest_cache/",

	// version control
	".git/",
	GitIgnoreFileName,
}

// DefaultSpec compiles DefaultPatterns. Each call returns a fresh Spec.
func DefaultSpec() *ignore.Spec {
	return ignore.Compile(DefaultPatterns...)
}
