package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/mekedron/logtrip/internal/config"
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
	"github.com/mekedron/logtrip/internal/service/output"
	"github.com/mekedron/logtrip/internal/trip"
)

type staticLoader struct {
	cfg domain.Config
	err error
}

func (l staticLoader) Load(context.Context) (domain.Config, error) {
	return l.cfg, l.err
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyUnit, "km", "")
	flags.Int(KeyPrecision, DefaultPrecision, "")
	flags.String(KeyFormat, "table", "")
	flags.String(KeySource, "json", "")
	return flags
}

func TestResolveDefaults(t *testing.T) {
	got, err := NewResolver(staticLoader{err: config.ErrConfigNotFound}).Resolve(context.Background(), newFlagSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Settings{Unit: geo.Kilometers, Precision: 1, Format: output.FormatTable, Source: trip.SourceJSON}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolveConfigOverridesDefaults(t *testing.T) {
	precision := 3
	loader := staticLoader{cfg: domain.Config{Unit: "mi", Precision: &precision, Source: "log"}}
	got, err := NewResolver(loader).Resolve(context.Background(), newFlagSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Unit != geo.Miles || got.Precision != 3 || got.Source != trip.SourceLog || got.Format != output.FormatTable {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestResolveEnvOverridesConfig(t *testing.T) {
	t.Setenv("LOGTRIP_UNIT", "nmi")
	t.Setenv("LOGTRIP_PRECISION", "2")
	loader := staticLoader{cfg: domain.Config{Unit: "mi"}}
	got, err := NewResolver(loader).Resolve(context.Background(), newFlagSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Unit != geo.NauticalMiles || got.Precision != 2 {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestResolveFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LOGTRIP_UNIT", "nmi")
	t.Setenv("LOGTRIP_FORMAT", "yaml")
	flags := newFlagSet()
	if err := flags.Parse([]string{"--unit", "m"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	got, err := NewResolver(nil).Resolve(context.Background(), flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Unit != geo.Meters {
		t.Fatalf("expected flag unit m, got %q", got.Unit)
	}
	if got.Format != output.FormatYAML {
		t.Fatalf("expected env format yaml, got %q", got.Format)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOGTRIP_UNIT":      "furlong",
		"LOGTRIP_PRECISION": "many",
		"LOGTRIP_FORMAT":    "xml",
		"LOGTRIP_SOURCE":    "kml",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := NewResolver(nil).Resolve(context.Background(), nil); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestResolvePropagatesLoaderErrors(t *testing.T) {
	_, err := NewResolver(staticLoader{err: config.ErrInvalidConfig}).Resolve(context.Background(), nil)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParsePrecisionBounds(t *testing.T) {
	if _, err := ParsePrecision("-1"); err == nil {
		t.Fatal("expected negative precision to fail")
	}
	if _, err := ParsePrecision("7"); err == nil {
		t.Fatal("expected precision above max to fail")
	}
	if got, err := ParsePrecision(" 6 "); err != nil || got != 6 {
		t.Fatalf("expected 6, got %d (%v)", got, err)
	}
}
