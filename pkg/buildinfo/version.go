// Package buildinfo carries the version stamped into stressmap at link time.
//
//	go build -ldflags "-X github.com/matzehuels/stressmap/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/stressmap/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/stressmap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Version is also part of every artifact cache key, so upgrading the binary
// never serves artifacts drawn by an older one.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if Version != "dev" {
		return
	}
	// go install stamps the module version even without ldflags.
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// ShortCommit returns the first seven characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, ShortCommit(), Date)
}
