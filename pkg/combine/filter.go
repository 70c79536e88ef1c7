// File: pkg/combine/filter.go
package combine

import (
	"os"
	"path/filepath"
	"strings"

	"copyfiles/pkg/ignore"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/zap"
)

// Filter excludes scanned files using the project's .gitignore, the default
// patterns and optional extra patterns. A file is dropped when any of the
// three specs matches it; a negation in one spec never overrides another.
type Filter struct {
	Defaults *ignore.Spec // Built-in patterns; usually DefaultSpec().
	Extra    *ignore.Spec // Optional user patterns; nil matches nothing.
	Logger   *zap.Logger  // Optional; receives per-file exclusion debug entries.
}

// NewFilter returns a Filter with the default patterns and the given extra spec.
func NewFilter(extra *ignore.Spec, logger *zap.Logger) Filter {
	return Filter{Defaults: DefaultSpec(), Extra: extra, Logger: logger}
}

// Apply returns the subset of files that no spec excludes. The .gitignore in
// root is read on every call. Output order is unspecified.
func (f Filter) Apply(files []string, root string) ([]string, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	root = canonicalRoot(root)
	vcs, err := LoadGitIgnore(root)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(files))
	for _, file := range files {
		rel := RelativePath(root, file)
		if source := f.excludedBy(vcs, rel); source != "" {
			logger.Debug("Excluded by ignore pattern", zap.String("path", rel), zap.String("source", source))
			continue
		}
		kept = append(kept, file)
	}
	return kept, nil
}

// excludedBy names the first spec, in priority order, that matches rel.
func (f Filter) excludedBy(vcs *ignore.Spec, rel string) string {
	switch {
	case vcs.Match(rel):
		return GitIgnoreFileName
	case f.Defaults.Match(rel):
		return "defaults"
	case f.Extra.Match(rel):
		return "extra"
	}
	return ""
}

// LoadGitIgnore compiles <root>/.gitignore. A missing file yields an empty spec.
func LoadGitIgnore(root string) (*ignore.Spec, error) {
	path := filepath.Join(root, GitIgnoreFileName)
	spec, err := ignore.CompileFile(path)
	if err != nil {
		if errors.Is(err, ignore.ErrNotText) {
			return nil, configError("decode", path, ErrUndecodable)
		}
		return nil, configError("read", path, err)
	}
	return spec, nil
}

// LoadExtraPatterns reads a user pattern file. The file must exist, be a
// regular file and decode as UTF-8; comment and blank lines are dropped.
func LoadExtraPatterns(path string) (*ignore.Spec, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, configError("open", path, ErrNotExist)
		}
		return nil, configError("open", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, configError("open", path, ErrNotRegular)
	}

	lines, err := ignore.ReadLines(path)
	if err != nil {
		if errors.Is(err, ignore.ErrNotText) {
			return nil, configError("decode", path, ErrUndecodable)
		}
		return nil, configError("read", path, err)
	}
	return ignore.Compile(ignore.StripComments(lines)...), nil
}

// canonicalRoot makes root absolute and symlink-free when possible so that it
// lines up with the paths Scan returns.
func canonicalRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root
}

// RelativePath returns path relative to root in forward-slash form. Paths
// outside root fall back to their own slash-converted form.
func RelativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
