// Package version provides version information for the copyfiles CLI tool.
package version

import (
	"fmt"
	"runtime"
)

// These variables are populated at build time using -ldflags.
// Example:
// go build -ldflags "-X 'copyfiles/pkg/version.Version=1.2.3' -X 'copyfiles/pkg/version.Commit=abcdefg' -X 'copyfiles/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
var (
	Version   = "dev"     // Semantic version of the application
	Commit    = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // OS and architecture
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information on a single line, e.g.
// copyfiles 1.2.3 (commit abcdefg, built 2024-04-27T15:04:05Z, go1.23.1 linux/amd64)
func (i Info) String() string {
	return fmt.Sprintf(
		"copyfiles %s (commit %s, built %s, %s %s)",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
