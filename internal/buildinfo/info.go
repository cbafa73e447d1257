// Package buildinfo carries release metadata stamped in with -ldflags, e.g.
//
//	-X github.com/cleared-dev/household/internal/buildinfo.Version=v0.3.0
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
