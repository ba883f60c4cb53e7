// Package buildinfo reports which packforce build produced a layout.
//
// The values are stamped by the release build:
//
//	go build -ldflags "-X github.com/matzehuels/packforce/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/packforce/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/packforce/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the packforce release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git SHA the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the build stamp printed by "packforce --version".
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template for the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
