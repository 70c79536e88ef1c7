package combine

import (
	"os"
	"path/filepath"
	"testing"

	"copyfiles/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func scanAndFilter(t *testing.T, root string, filter Filter) []string {
	t.Helper()
	files, err := Scan(root)
	require.NoError(t, err)
	kept, err := filter.Apply(files, root)
	require.NoError(t, err)
	return relativeAll(root, kept)
}

func TestFilterExcludesUnionOfSpecs(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{
		".gitignore":            "b/\n",
		"a.py":                  "x=1",
		"b/c.md":                "# hi",
		".env":                  "TOKEN=1",
		"node_modules/x.js":     "x",
		"src/__pycache__/m.pyc": "m",
		".git/HEAD":             "ref",
		"notes.txt":             "n",
		"src/main.go":           "package main",
	})

	kept := scanAndFilter(t, root, NewFilter(ignore.Compile("*.txt"), nil))
	assert.ElementsMatch(t, []string{"a.py", "src/main.go"}, kept)
}

func TestFilterWithoutAnyPatternsKeepsEverythingButDefaults(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{"a.py": "x", "docs/b.md": "b"})

	kept := scanAndFilter(t, root, NewFilter(nil, nil))
	assert.ElementsMatch(t, []string{"a.py", "docs/b.md"}, kept)
}

func TestFilterNegationWithinGitIgnore(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{
		".gitignore": "*.log\n!keep.log\n",
		"debug.log":  "d",
		"keep.log":   "k",
		"a.py":       "x",
	})

	kept := scanAndFilter(t, root, NewFilter(nil, nil))
	assert.ElementsMatch(t, []string{"a.py", "keep.log"}, kept)
}

func TestFilterNegationDoesNotCrossSpecs(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{
		".gitignore": "*.log\n",
		"keep.log":   "k",
		"a.txt":      "a",
	})

	// A negation in the extra spec cannot re-include what .gitignore excludes.
	kept := scanAndFilter(t, root, NewFilter(ignore.Compile("!keep.log", "a.txt"), nil))
	assert.Empty(t, kept)
}

func TestFilterTrailingDoubleStarKeepsFileWithDirectoryName(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{
		".gitignore": "foo/**\n",
		"foo":        "a file, not a directory",
		"bar/foo/x":  "x",
	})

	kept := scanAndFilter(t, root, NewFilter(nil, nil))
	assert.ElementsMatch(t, []string{"foo", "bar/foo/x"}, kept)
}

func TestFilterLogsExclusions(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{".env": "x", "a.py": "x"})

	core, logs := observer.New(zapcore.DebugLevel)
	kept := scanAndFilter(t, root, NewFilter(nil, zap.New(core)))
	assert.Equal(t, []string{"a.py"}, kept)

	entries := logs.FilterMessage("Excluded by ignore pattern").All()
	require.Len(t, entries, 1)
	assert.Equal(t, ".env", entries[0].ContextMap()["path"])
	assert.Equal(t, "defaults", entries[0].ContextMap()["source"])
}

func TestFilterUndecodableGitIgnore(t *testing.T) {
	root := resolvedTempDir(t)
	createFiles(t, root, map[string]string{".gitignore": "\xff\xfe\xfd", "a.py": "x"})

	files, err := Scan(root)
	require.NoError(t, err)
	_, err = NewFilter(nil, nil).Apply(files, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestLoadExtraPatterns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.ignore")
	require.NoError(t, os.WriteFile(path, []byte("# generated\n\n*.gen.go\n  # indented\nfixtures/\n"), 0o644))

	spec, err := LoadExtraPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Len())
	assert.True(t, spec.Match("pkg/api.gen.go"))
	assert.True(t, spec.Match("testdata/fixtures/a.json"))
	assert.False(t, spec.Match("pkg/api.go"))
}

func TestLoadExtraPatternsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadExtraPatterns(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrNotExist)

	_, err = LoadExtraPatterns(dir)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrNotRegular)

	binary := filepath.Join(dir, "binary")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 'a'}, 0o644))
	_, err = LoadExtraPatterns(binary)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestRelativePath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	assert.Equal(t, "a/b.go", RelativePath(root, filepath.Join(root, "a", "b.go")))
	outside := filepath.Join(string(filepath.Separator), "elsewhere", "c.go")
	assert.Equal(t, filepath.ToSlash(outside), RelativePath(root, outside))
}
