package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if versionShort {
			cmd.Println(version)
			return
		}
		cmd.Println(versionLine(version, readRevision()))
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}

// versionLine formats the full version banner. revision may be empty.
func versionLine(v, revision string) string {
	line := fmt.Sprintf("shopdesk %s (%s %s/%s)", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if revision != "" {
		line += " commit " + revision
	}
	return line
}

// readRevision returns the abbreviated VCS revision stamped by go build.
func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
