package main

import (
	"log"
	"os"
	"strings"

	"copyfiles/cmd"
	"copyfiles/pkg/logging"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	level := zap.NewAtomicLevelAt(logging.LevelFor(false))
	logger := logging.New(os.Stderr, level)

	err := cmd.Execute(logger, level)

	// Syncing stderr fails with "invalid argument" on pipes and some consoles.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "copyfiles: %v\n", err)
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
