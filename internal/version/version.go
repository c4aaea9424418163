package version

import "fmt"

// Name is the product name used in version output and client user agents.
const Name = "alarm-manager"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("%s %s, commit: %s, built at: %s", Name, Version, Commit, BuildTime)
}

// UserAgent identifies this build to the alarm server, e.g. "alarm-manager/0.1.0".
func UserAgent() string {
	return Name + "/" + Version
}
