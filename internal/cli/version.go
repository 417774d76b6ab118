package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const (
	devVersion         = "dev"
	goDevelMainVersion = "(devel)"
	vcsRevisionKey     = "vcs.revision"
	vcsModifiedKey     = "vcs.modified"
	shortRevisionLen   = 12
)

var readBuildInfo = debug.ReadBuildInfo

// resolvedVersion prefers an injected release version, then the module
// version, then the VCS revision stamped into the binary.
func resolvedVersion(injected string) string {
	injected = strings.TrimSpace(injected)
	if injected != "" && injected != devVersion {
		return injected
	}

	if info, ok := readBuildInfo(); ok && info != nil {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != goDevelMainVersion {
			return v
		}
		if revision, dirty := vcsRevision(info.Settings); revision != "" {
			if dirty {
				revision += "-dirty"
			}
			return revision
		}
	}
	return devVersion
}

func vcsRevision(settings []debug.BuildSetting) (string, bool) {
	var revision string
	var dirty bool
	for _, setting := range settings {
		switch setting.Key {
		case vcsRevisionKey:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedKey:
			dirty = strings.EqualFold(strings.TrimSpace(setting.Value), "true")
		}
	}
	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	return revision, dirty
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "logtrip %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
