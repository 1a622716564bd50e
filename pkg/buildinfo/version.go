// Package buildinfo carries the version stamp baked in at build time.
//
// Release builds override the defaults with ldflags, e.g.:
//
//	go build -ldflags "-X github.com/laminagraph/lamina/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/laminagraph/lamina/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/laminagraph/lamina/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for untagged builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the full build stamp for logs and diagnostics.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template, so `lamina --version` prints
// the same stamp as String.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
