package trip

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// Options configures Run.
type Options struct {
	Unit   geo.Unit
	Decode Decoder
	Logger *zap.Logger
	// Visit, when set, receives every decoded position in input order.
	Visit func(domain.Position)
}

// Run reads r to end of stream and accumulates the distance between
// consecutive records. The first bad line aborts the run.
func Run(ctx context.Context, r io.Reader, opts Options) (Summary, error) {
	decode := opts.Decode
	if decode == nil {
		decode = DecodeJSON
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	acc := NewAccumulator(opts.Unit)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		line++
		pos, ok, err := decode(scanner.Bytes())
		if err != nil {
			logger.Debug("rejecting record", zap.Int("line", line), zap.Error(err))
			return Summary{}, &LineError{Line: line, Err: err}
		}
		if !ok {
			continue
		}
		acc.Add(pos)
		if opts.Visit != nil {
			opts.Visit(pos)
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, &LineError{Line: line + 1, Err: fmt.Errorf("read input: %w", err)}
	}

	summary := acc.Summary()
	summary.Lines = line
	logger.Debug("input consumed",
		zap.Int("lines", line),
		zap.Int("records", summary.Records),
		zap.Int("pairs", summary.Pairs),
		zap.Float64("distance", summary.Distance),
		zap.String("unit", string(summary.Unit)),
	)
	return summary, nil
}

// FormatDistance renders d with precision decimals. Halfway cases are
// rounded to even on the exact binary value, so 12.35 (stored just below
// 12.35) renders as 12.3 and 0.25 as 0.2.
func FormatDistance(d float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(d, 'f', precision, 64)
}
