package app

import "fmt"

// Version, Commit and BuildTime are stamped via ldflags, e.g.
// -X github.com/heartmarshall/doccontrol-backend/internal/app.Version=1.4.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version string reported in startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
