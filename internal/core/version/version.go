// Package version reports build information stamped at link time
package version

// BuildInfo holds version information about the binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set via -ldflags "-X 'videobot/internal/core/version.version=v0.1.0'
// -X 'videobot/internal/core/version.commit=abcd' -X 'videobot/internal/core/version.date=2025-11-30'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders "service version (commit, date)" for --version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
