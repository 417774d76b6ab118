package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mekedron/logtrip/internal/config"
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/logging"
	"github.com/mekedron/logtrip/internal/service/output"
	"github.com/mekedron/logtrip/internal/service/settings"
	"github.com/mekedron/logtrip/internal/trip"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format    string
	Unit      string
	Precision int
	Source    string
	Output    string
	Verbose   bool
}

const (
	codeInvalidRecord = "LOGTRIP_INVALID_RECORD"
	codeReadError     = "LOGTRIP_READ_ERROR"
	codeConfigError   = "LOGTRIP_CONFIG_ERROR"
	codeOutputError   = "LOGTRIP_OUTPUT_ERROR"
)

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Format, settings.KeyFormat, string(output.FormatTable), "Output format: table, json, or yaml.")
	pf.StringVar(&flags.Unit, settings.KeyUnit, "km", "Distance unit: km, m, mi, nmi, or ft.")
	pf.IntVar(&flags.Precision, settings.KeyPrecision, settings.DefaultPrecision, "Decimals in the reported distance (0-6).")
	pf.StringVar(&flags.Source, settings.KeySource, string(trip.SourceJSON), "Input line format: json (one object per line) or log (vessel log POSITION entries).")
	pf.StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	pf.BoolVar(&flags.Verbose, "verbose", false, "Write diagnostics to stderr.")
}

// run bundles what a command needs once flags are parsed.
type run struct {
	settings   settings.Settings
	logger     *zap.Logger
	outputPath string
}

func prepareRun(cmd *cobra.Command, deps Dependencies, flags *globalFlags) (run, error) {
	logger := logging.New(flags.Verbose, cmd.ErrOrStderr())
	if deps.ConfigErr != nil {
		logger.Debug("config store unavailable, using defaults", zap.Error(deps.ConfigErr))
	}
	resolver := deps.Settings
	if resolver == nil {
		resolver = settings.NewResolver(nil)
	}
	resolved, err := resolver.Resolve(cmd.Context(), cmd.Flags())
	if err != nil {
		logger.Debug("settings rejected", zap.Error(err))
		return run{}, configError(cmd, err)
	}
	logger.Debug("settings resolved",
		zap.String("unit", string(resolved.Unit)),
		zap.Int("precision", resolved.Precision),
		zap.String("format", string(resolved.Format)),
		zap.String("source", string(resolved.Source)),
	)
	return run{settings: resolved, logger: logger, outputPath: flags.Output}, nil
}

func accumulate(cmd *cobra.Command, r run, visit func(domain.Position)) (trip.Summary, error) {
	summary, err := trip.Run(cmd.Context(), cmd.InOrStdin(), trip.Options{
		Unit:   r.settings.Unit,
		Decode: r.settings.Source.Decoder(),
		Logger: r.logger,
		Visit:  visit,
	})
	if err == nil {
		return summary, nil
	}
	failure := output.Failure{Code: codeReadError, Message: err.Error()}
	if isRecordError(err) {
		failure.Code = codeInvalidRecord
	}
	var lineErr *trip.LineError
	if errors.As(err, &lineErr) {
		failure.Line = lineErr.Line
	}
	return trip.Summary{}, emitError(cmd, r.settings.Format, r.settings, failure)
}

func isRecordError(err error) bool {
	for _, target := range []error{trip.ErrDecode, trip.ErrMissingField, trip.ErrInvalidField, trip.ErrOutOfRange} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// roundedDistance returns d as rendered and as the number it renders to.
func roundedDistance(d float64, precision int) (string, float64) {
	text := trip.FormatDistance(d, precision)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text, d
	}
	return text, value
}

// inputOf describes the stream summary was computed from.
func inputOf(summary trip.Summary) *output.Input {
	return &output.Input{Lines: summary.Lines, Records: summary.Records}
}

func metaFor(s settings.Settings, input *output.Input) output.Meta {
	return output.Meta{Unit: string(s.Unit), Source: string(s.Source), Input: input}
}

func writeResult(cmd *cobra.Command, r run, input *output.Input, text string, data any) error {
	if r.settings.Format == output.FormatTable {
		return writeTable(cmd, r, text)
	}
	env := output.BuildEnvelope(metaFor(r.settings, input), data, nil)
	rendered, err := output.RenderPayload(env, r.settings.Format)
	if err != nil {
		return err
	}
	return writeTable(cmd, r, rendered)
}

func writeTable(cmd *cobra.Command, r run, text string) error {
	if err := output.WriteOutput(cmd.OutOrStdout(), text, r.outputPath); err != nil {
		return emitError(cmd, output.FormatTable, r.settings, output.Failure{Code: codeOutputError, Message: err.Error()})
	}
	return nil
}

// emitError reports a failure on stderr and returns the controlled exit
// error. Stdout is left untouched.
func emitError(cmd *cobra.Command, format output.Format, s settings.Settings, failure output.Failure) error {
	if format == output.FormatTable || format == "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "logtrip: %s\n", failure.Message)
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(metaFor(s, nil), nil, &failure)
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		rendered = failure.Message
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), rendered)
	return &exitError{code: 1}
}

func configError(cmd *cobra.Command, err error) error {
	message := err.Error()
	if errors.Is(err, config.ErrInvalidConfig) {
		message += " (fix or remove the config file, or run configure --overwrite)"
	}
	return emitError(cmd, output.FormatTable, settings.Settings{}, output.Failure{Code: codeConfigError, Message: message})
}
