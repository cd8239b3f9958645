package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// develVersion marks builds without ldflags.
const develVersion = "0.0.0-dev"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = develVersion
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
// Binaries installed with `go install module@version` report that version.
func Short() string {
	if Version != develVersion {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

// Full returns a human-readable version string with commit, build time and Go version.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s, go: %s", Short(), Commit, BuildTime, runtime.Version())
}
