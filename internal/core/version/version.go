// Package version reports the build identity of the API binary.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information stamped at link time:
//
//	-ldflags "-X 'bizdash/internal/core/version.version=v0.3.0' -X 'bizdash/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: "bizdash-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
