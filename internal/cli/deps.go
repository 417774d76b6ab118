package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/pflag"

	"github.com/mekedron/logtrip/internal/config"
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/service/settings"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// SettingsResolver resolves effective run settings.
type SettingsResolver interface {
	Resolve(ctx context.Context, flags *pflag.FlagSet) (settings.Settings, error)
}

// ConfigManager stores local defaults.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (domain.Config, error)
	Save(ctx context.Context, cfg domain.Config) error
}

// Dependencies wires runtime services.
type Dependencies struct {
	Settings SettingsResolver
	Config   ConfigManager
	Version  string
	// ConfigErr is why no config store could be opened. Commands still run
	// on environment and built-in defaults.
	ConfigErr error
}

// NewDependencies wires the default services around the user's config store.
func NewDependencies(version string) Dependencies {
	store, err := config.NewStore()
	if err != nil {
		return Dependencies{
			Settings:  settings.NewResolver(nil),
			Version:   version,
			ConfigErr: err,
		}
	}
	return Dependencies{
		Settings: settings.NewResolver(store),
		Config:   store,
		Version:  version,
	}
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies and returns the process
// exit code.
func Execute(ctx context.Context, args []string, deps Dependencies, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintf(stderr, "logtrip: %s\n", msg)
	}
	return 1
}
