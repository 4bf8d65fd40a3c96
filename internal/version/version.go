// Package version holds build metadata injected with -ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/mapidoc/internal/version.Version=v1.2.0"
package version

import "fmt"

// Version is the release tag of the binary.
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("mapidoc %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
