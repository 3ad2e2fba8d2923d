package cmd

import (
	"fmt"
	"io"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/destiny/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeVersion(cmd.OutOrStdout(), settings.VersionInformation)
	},
}

// writeVersion prints the build metadata. A binary built without ldflags
// falls back to the module version or VCS revision from the build info.
func writeVersion(w io.Writer, info settings.VersionInfo) error {
	version, commit := info.BuildVersion, info.Commit
	goVersion := runtime.Version()
	if bi, ok := rdebug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" && version == settings.DevBuildVersion {
			version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 && commit == "unknown" {
				commit = s.Value[:7]
			}
		}
		if bi.GoVersion != "" {
			goVersion = bi.GoVersion
		}
	}

	_, err := fmt.Fprintf(w, "%s %s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s\n",
		settings.CliBinaryName, version, commit, info.BuildTime,
		goVersion, runtime.GOOS, runtime.GOARCH)
	return err
}
