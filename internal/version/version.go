// Package version reports which formdiff build produced a result.
package version

import "fmt"

// Overridden at build time:
//
//	go build -ldflags "-X formdiff/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("formdiff %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
