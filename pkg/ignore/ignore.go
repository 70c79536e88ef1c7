// Package ignore compiles gitignore-style pattern lists and matches
// slash-separated relative paths against them.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnorePattern is a single compiled rule together with metadata about its origin.
type IgnorePattern struct {
	Glob     string // doublestar glob, without anchoring slash or directory suffix.
	Negate   bool   // Rule started with '!' and re-includes matching paths.
	DirOnly  bool   // Rule ended with '/' and only applies to directories.
	Anchored bool   // Rule contained a '/' and is matched from the root.
	Line     string // Original pattern line.
	LineNo   int    // Line number in the source (1-based).
}

// Spec is an ordered, immutable set of ignore patterns. The zero value and a
// nil *Spec match nothing.
type Spec struct {
	patterns []*IgnorePattern
}

// Compile parses pattern lines into a Spec. Blank lines, comments and
// malformed globs are dropped.
func Compile(lines ...string) *Spec {
	spec := &Spec{}
	for i, line := range lines {
		if pattern := parsePatternLine(line, i+1); pattern != nil {
			spec.patterns = append(spec.patterns, pattern)
		}
	}
	return spec
}

// Patterns returns the compiled rules in evaluation order.
func (s *Spec) Patterns() []*IgnorePattern {
	if s == nil {
		return nil
	}
	out := make([]*IgnorePattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Len reports the number of compiled rules.
func (s *Spec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Match reports whether the relative path is excluded by the spec.
func (s *Spec) Match(relPath string) bool {
	matched, _ := s.MatchWithPattern(relPath)
	return matched
}

// MatchWithPattern reports whether the relative path is excluded and returns
// the last rule that matched it, which may be a negation.
func (s *Spec) MatchWithPattern(relPath string) (bool, *IgnorePattern) {
	if s == nil || len(s.patterns) == 0 {
		return false, nil
	}
	segments := splitPath(relPath)
	if len(segments) == 0 {
		return false, nil
	}

	matched := false
	var matchedPattern *IgnorePattern
	for _, pattern := range s.patterns {
		if pattern.matches(segments, false) {
			matched = !pattern.Negate
			matchedPattern = pattern
		}
	}
	return matched, matchedPattern
}

// MatchDir is like Match but treats the path itself as a directory, so
// directory-only rules may apply to its final segment.
func (s *Spec) MatchDir(relPath string) bool {
	if s == nil {
		return false
	}
	segments := splitPath(relPath)
	if len(segments) == 0 {
		return false
	}
	matched := false
	for _, pattern := range s.patterns {
		if pattern.matches(segments, true) {
			matched = !pattern.Negate
		}
	}
	return matched
}

// matches reports whether the rule matches the path or one of its ancestor
// directories. Every segment but the last is a directory; the last one is a
// directory only when leafIsDir is set.
func (p *IgnorePattern) matches(segments []string, leafIsDir bool) bool {
	for i := 1; i <= len(segments); i++ {
		isDir := i < len(segments) || leafIsDir
		if p.DirOnly && !isDir {
			continue
		}
		// "dir/**" matches what is inside dir, never a file named dir.
		if i == len(segments) && !isDir && strings.HasSuffix(p.Glob, "/**") {
			continue
		}
		var target string
		if p.Anchored {
			target = strings.Join(segments[:i], "/")
		} else {
			target = segments[i-1]
		}
		if ok, err := doublestar.Match(p.Glob, target); err == nil && ok {
			return true
		}
	}
	return false
}

// parsePatternLine turns one line of an ignore file into a rule.
// Returns nil for blank lines, comments and invalid globs.
func parsePatternLine(line string, lineNo int) *IgnorePattern {
	trimmed := strings.TrimRight(line, "\r\n")
	trimmed = trimTrailingSpace(strings.TrimLeft(trimmed, " \t"))

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	pattern := &IgnorePattern{Line: line, LineNo: lineNo}

	if strings.HasPrefix(trimmed, "!") {
		pattern.Negate = true
		trimmed = trimmed[1:]
	}

	// Escaped leading '#' and '!' are literal.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		pattern.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}

	if strings.Contains(trimmed, "/") {
		pattern.Anchored = true
		trimmed = strings.TrimLeft(trimmed, "/")
	}

	if trimmed == "" || !doublestar.ValidatePattern(trimmed) {
		return nil
	}
	pattern.Glob = trimmed
	return pattern
}

// trimTrailingSpace drops trailing blanks unless the last one is escaped.
func trimTrailingSpace(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		if last != ' ' && last != '\t' {
			break
		}
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			return s[:len(s)-2] + string(last)
		}
		s = s[:len(s)-1]
	}
	return s
}

// splitPath converts the path to forward slashes and drops empty and "."
// segments.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
