package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"copyfiles/pkg/combine"
	"copyfiles/pkg/logging"
	"copyfiles/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func runCommand(t *testing.T, args ...string) (string, string, *observer.ObservedLogs, error) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger := zap.New(core).WithOptions(zap.IncreaseLevel(level))

	rootCmd := NewRootCommand(logger, level)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), logs, err
}

func projectFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("print('hello world')\n"), 0o644))
	return root
}

func TestRootCommandWritesDocument(t *testing.T) {
	root := projectFixture(t)
	out := filepath.Join(t.TempDir(), "out.md")

	_, stderr, logs, err := runCommand(t, "--root", root, "--out", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Contains(t, stderr, "copyfiles: wrote")
	assert.Contains(t, stderr, "1 files")
	assert.Zero(t, logs.FilterMessage("Done").Len(), "quiet without --verbose")
}

func TestRootCommandVerboseRaisesLevel(t *testing.T) {
	root := projectFixture(t)
	out := filepath.Join(t.TempDir(), "out.md")

	_, _, logs, err := runCommand(t, "--root", root, "--out", out, "-v")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Done").Len())
}

func TestRootCommandReadsEnvironment(t *testing.T) {
	root := projectFixture(t)
	out := filepath.Join(t.TempDir(), "out.md")
	t.Setenv("COPYFILES_MAX_BYTES", "5")
	t.Setenv("COPYFILES_OUT", out)

	_, _, _, err := runCommand(t, "--root", root)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "print\n"+combine.TruncationMarker+"\n")
}

func TestRootCommandFlagsOverrideSettingsFile(t *testing.T) {
	root := projectFixture(t)
	dir := t.TempDir()
	settingsOut := filepath.Join(dir, "from-settings.md")
	flagOut := filepath.Join(dir, "from-flag.md")
	settingsPath := filepath.Join(dir, "settings.yaml")
	settingsYAML := "root: " + root + "\nout: " + settingsOut + "\nmax-bytes: 5\n"
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsYAML), 0o644))

	_, _, _, err := runCommand(t, "--settings", settingsPath, "--out", flagOut)
	require.NoError(t, err)
	assert.NoFileExists(t, settingsOut)
	data, err := os.ReadFile(flagOut)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), combine.TruncationMarker), "max-bytes from settings file")
}

func TestRootCommandMissingSettingsFile(t *testing.T) {
	_, _, _, err := runCommand(t, "--settings", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}

func TestRootCommandConfigError(t *testing.T) {
	root := projectFixture(t)
	_, _, _, err := runCommand(t,
		"--root", root,
		"--out", filepath.Join(t.TempDir(), "out.md"),
		"--config", filepath.Join(t.TempDir(), "missing.ignore"))
	require.Error(t, err)
	assert.ErrorIs(t, err, combine.ErrConfig)
}

func TestRootCommandQuietOnFatalError(t *testing.T) {
	var diagnostics bytes.Buffer
	level := zap.NewAtomicLevelAt(logging.LevelFor(false))
	rootCmd := NewRootCommand(logging.New(&diagnostics, level), level)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--root", filepath.Join(t.TempDir(), "missing"), "--out", filepath.Join(t.TempDir(), "out.md")})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, combine.ErrInvalidRoot)
	assert.Empty(t, diagnostics.String())
}

func TestRootCommandRejectsPositionalArgs(t *testing.T) {
	_, _, _, err := runCommand(t, "extra")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, _, err := runCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)

	stdout, _, _, err = runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "copyfiles "+version.Version+" (commit "))
}
