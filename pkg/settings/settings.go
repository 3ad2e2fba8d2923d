// Package settings provides build metadata, per-run options, and context
// helpers shared by the destiny CLI and its library packages.
package settings

import "time"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "destiny"

// DefaultLoadTimeout bounds a single dataset fetch.
const DefaultLoadTimeout = 30 * time.Second

// DevBuildVersion is the version reported when no ldflags were given.
const DevBuildVersion = "v0.0.0-nightly"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: DevBuildVersion,
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// DataSettings describes where the dataset comes from and how long a fetch
// may take.
type DataSettings struct {
	Source  string
	Timeout time.Duration
	Where   string
}

// Run holds configuration for a single execution of the application.
type Run struct {
	MinLogLevel int8
	SessionID   string
	Data        DataSettings
	Query       string
	NoColor     bool
	Interactive bool
	ExitOnError bool
}

// NewCliParams returns the default run settings for CLI usage.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Data: DataSettings{
			Timeout: DefaultLoadTimeout,
		},
		NoColor:     false,
		Interactive: true,
		ExitOnError: true,
	}
}
