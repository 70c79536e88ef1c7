// Package logging builds the console logger used for copyfiles diagnostics.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// New returns a message-centric console logger writing to w. The level can be
// changed after construction through level.
func New(w io.Writer, level zap.AtomicLevel) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.TimeKey = ""
	config.NameKey = ""
	config.CallerKey = ""
	config.StacktraceKey = ""
	config.MessageKey = "message"
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	if IsTerminal(w) {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)
	return zap.New(core)
}

// LevelFor maps the verbose flag to a log level.
func LevelFor(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.InfoLevel
	}
	return zapcore.WarnLevel
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
