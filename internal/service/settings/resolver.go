// Package settings resolves the effective run settings from flags,
// environment, the config file and built-in defaults, in that order.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mekedron/logtrip/internal/config"
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
	"github.com/mekedron/logtrip/internal/service/output"
	"github.com/mekedron/logtrip/internal/trip"
)

// EnvPrefix prefixes environment overrides, e.g. LOGTRIP_UNIT.
const EnvPrefix = "LOGTRIP"

const (
	KeyUnit      = "unit"
	KeyPrecision = "precision"
	KeyFormat    = "format"
	KeySource    = "source"

	DefaultPrecision = 1
)

// Settings are the effective options for one run.
type Settings struct {
	Unit      geo.Unit      `json:"unit" yaml:"unit"`
	Precision int           `json:"precision" yaml:"precision"`
	Format    output.Format `json:"format" yaml:"format"`
	Source    trip.Source   `json:"source" yaml:"source"`
}

// Loader provides config payloads.
type Loader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Resolver layers settings sources.
type Resolver struct {
	loader Loader
}

// NewResolver creates a settings resolver. A nil loader means no config
// file.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve computes settings. Only flags that were set on the command line
// override lower layers. A missing config file is not an error.
func (r *Resolver) Resolve(ctx context.Context, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyUnit, string(geo.Kilometers))
	v.SetDefault(KeyPrecision, DefaultPrecision)
	v.SetDefault(KeyFormat, string(output.FormatTable))
	v.SetDefault(KeySource, string(trip.SourceJSON))

	if r.loader != nil {
		cfg, err := r.loader.Load(ctx)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
		case err != nil:
			return Settings{}, err
		default:
			if err := v.MergeConfigMap(configMap(cfg)); err != nil {
				return Settings{}, fmt.Errorf("merge config: %w", err)
			}
		}
	}

	if flags != nil {
		for _, key := range []string{KeyUnit, KeyPrecision, KeyFormat, KeySource} {
			if flag := flags.Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Settings{}, fmt.Errorf("bind --%s: %w", key, err)
				}
			}
		}
	}

	return fromViper(v)
}

func configMap(cfg domain.Config) map[string]any {
	values := map[string]any{}
	if cfg.Unit != "" {
		values[KeyUnit] = cfg.Unit
	}
	if cfg.Precision != nil {
		values[KeyPrecision] = *cfg.Precision
	}
	if cfg.Format != "" {
		values[KeyFormat] = cfg.Format
	}
	if cfg.Source != "" {
		values[KeySource] = cfg.Source
	}
	return values
}

func fromViper(v *viper.Viper) (Settings, error) {
	unit, err := geo.ParseUnit(v.GetString(KeyUnit))
	if err != nil {
		return Settings{}, err
	}
	precision, err := ParsePrecision(v.GetString(KeyPrecision))
	if err != nil {
		return Settings{}, err
	}
	format, err := output.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Settings{}, err
	}
	source, err := trip.ParseSource(v.GetString(KeySource))
	if err != nil {
		return Settings{}, err
	}
	return Settings{Unit: unit, Precision: precision, Format: format, Source: source}, nil
}

// ParsePrecision validates a number of output decimals.
func ParsePrecision(raw string) (int, error) {
	precision, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid precision %q", raw)
	}
	if precision < 0 || precision > config.MaxPrecision {
		return 0, fmt.Errorf("precision must be between 0 and %d", config.MaxPrecision)
	}
	return precision, nil
}
