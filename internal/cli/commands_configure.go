package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mekedron/logtrip/internal/config"
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
	"github.com/mekedron/logtrip/internal/service/output"
	"github.com/mekedron/logtrip/internal/service/settings"
	"github.com/mekedron/logtrip/internal/trip"
)

func newConfigureCommand(deps Dependencies, flags *globalFlags) *cobra.Command {
	var show bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save --unit, --precision, --format and --source as local defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Config == nil {
				if deps.ConfigErr != nil {
					return configError(cmd, fmt.Errorf("config store is not available: %w", deps.ConfigErr))
				}
				return configError(cmd, fmt.Errorf("config store is not available"))
			}
			if show {
				return showSettings(cmd, deps, flags)
			}

			update, err := configFromFlags(cmd, flags)
			if err != nil {
				return configError(cmd, err)
			}
			if update.IsZero() {
				return configError(cmd, fmt.Errorf("provide at least one of --unit, --precision, --format or --source"))
			}

			existing, loadErr := deps.Config.Load(cmd.Context())
			switch {
			case loadErr == nil && !overwrite:
				update = mergeConfig(existing, update)
			case loadErr == nil, errors.Is(loadErr, config.ErrConfigNotFound):
			case errors.Is(loadErr, config.ErrInvalidConfig) && overwrite:
			default:
				return configError(cmd, loadErr)
			}

			if err := deps.Config.Save(cmd.Context(), update); err != nil {
				return configError(cmd, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Defaults saved to %s\n", deps.Config.Path())
			return err
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Print the effective settings and the config path instead of saving.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the existing config instead of merging into it.")
	return cmd
}

func configFromFlags(cmd *cobra.Command, flags *globalFlags) (domain.Config, error) {
	var cfg domain.Config
	if cmd.Flags().Changed(settings.KeyUnit) {
		unit, err := geo.ParseUnit(flags.Unit)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Unit = string(unit)
	}
	if cmd.Flags().Changed(settings.KeyPrecision) {
		precision, err := settings.ParsePrecision(strconv.Itoa(flags.Precision))
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Precision = &precision
	}
	if cmd.Flags().Changed(settings.KeyFormat) {
		format, err := output.ParseFormat(flags.Format)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Format = string(format)
	}
	if cmd.Flags().Changed(settings.KeySource) {
		source, err := trip.ParseSource(flags.Source)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Source = string(source)
	}
	return cfg, nil
}

func mergeConfig(base, update domain.Config) domain.Config {
	if update.Unit != "" {
		base.Unit = update.Unit
	}
	if update.Precision != nil {
		base.Precision = update.Precision
	}
	if update.Format != "" {
		base.Format = update.Format
	}
	if update.Source != "" {
		base.Source = update.Source
	}
	return base
}

func showSettings(cmd *cobra.Command, deps Dependencies, flags *globalFlags) error {
	r, err := prepareRun(cmd, deps, flags)
	if err != nil {
		return err
	}
	s := r.settings
	rows := [][2]string{
		{"config", deps.Config.Path()},
		{settings.KeyUnit, string(s.Unit)},
		{settings.KeyPrecision, strconv.Itoa(s.Precision)},
		{settings.KeyFormat, string(s.Format)},
		{settings.KeySource, string(s.Source)},
	}
	data := map[string]any{
		"config":   deps.Config.Path(),
		"settings": s,
	}
	return writeResult(cmd, r, nil, output.RenderTable("", rows), data)
}
