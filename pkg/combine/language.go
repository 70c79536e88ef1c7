package combine

import (
	"path/filepath"
	"strings"
)

// extensionLanguages maps lower-case file extensions to fence language tags.
var extensionLanguages = map[string]string{
	// scripting
	".py": "python", ".pyi": "python", ".rb": "ruby", ".lua": "lua", ".php": "php", ".r": "r",
	".sh": "bash", ".bash": "bash", ".zsh": "bash", ".ps1": "powershell",
	// web
	".js": "javascript", ".mjs": "javascript", ".cjs": "javascript", ".jsx": "jsx",
	".ts": "typescript", ".mts": "typescript", ".cts": "typescript", ".tsx": "tsx",
	".html": "html", ".htm": "html", ".css": "css", ".scss": "scss", ".less": "less", ".vue": "vue",
	// compiled
	".go": "go", ".rs": "rust", ".java": "java", ".kt": "kotlin", ".kts": "kotlin",
	".c": "c", ".h": "c", ".cpp": "cpp", ".cc": "cpp", ".cxx": "cpp", ".hpp": "cpp",
	".cs": "csharp", ".swift": "swift", ".dart": "dart",
	// data and config
	".json": "json", ".yml": "yaml", ".yaml": "yaml", ".toml": "toml", ".ini": "ini", ".xml": "xml",
	".sql": "sql", ".proto": "protobuf", ".graphql": "graphql", ".gql": "graphql",
	".tf": "hcl", ".hcl": "hcl",
	// docs
	".md": "markdown", ".mdx": "markdown",
}

// fileNameLanguages covers files identified by name rather than extension.
var fileNameLanguages = map[string]string{
	"dockerfile":  "dockerfile",
	"makefile":    "makefile",
	"gnumakefile": "makefile",
	"go.mod":      "go",
}

// languageFor infers the fence language tag for a path. It returns an empty
// string when the type is unknown.
func languageFor(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := fileNameLanguages[base]; ok {
		return lang
	}
	return extensionLanguages[strings.ToLower(filepath.Ext(base))]
}
