// Package version exposes build information injected at link time.
package version

// Version is the vigie release version, overridden via ldflags on tagged
// builds.
var Version = "dev"

// GitCommit is the git commit hash, set at build time via ldflags.
var GitCommit = "none"

// BuildDate is the build date, set at build time via ldflags.
var BuildDate = "unknown"
