// Package version holds build metadata set via -ldflags.
package version

// Set at build time with -ldflags "-X github.com/sydlexius/amkit/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)
