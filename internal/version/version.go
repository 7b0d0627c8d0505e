package version

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const Version = "0.3.0"

// Set at build time with -ldflags "-X".
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info is the bare semantic version, as reported to MCP clients.
func Info() string {
	return Version
}

// FullInfo is the --version line.
func FullInfo() string {
	return fmt.Sprintf("smellscan %s (commit: %s, built: %s, build: %s)", Version, GitCommit, BuildDate, BuildID())
}

// BuildID fingerprints the running binary from its Go version, main module
// and VCS stamp. Binaries built without build info get Version-GitCommit.
var BuildID = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version + "-" + GitCommit
	}

	d := xxhash.New()
	for _, s := range []string{info.GoVersion, info.Main.Path, info.Main.Version} {
		_, _ = d.WriteString(s)
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.modified", "vcs.time":
			_, _ = d.WriteString(s.Key + "=" + s.Value)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
})
