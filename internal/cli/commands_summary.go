package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
	"github.com/mekedron/logtrip/internal/service/output"
	"github.com/mekedron/logtrip/internal/trip"
)

type summaryPayload struct {
	Distance float64          `json:"distance" yaml:"distance"`
	Unit     string           `json:"unit" yaml:"unit"`
	Records  int              `json:"records" yaml:"records"`
	Pairs    int              `json:"pairs" yaml:"pairs"`
	Bounds   *geo.Bounds      `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Centre   *domain.Position `json:"centre,omitempty" yaml:"centre,omitempty"`
}

func newSummaryCommand(deps Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Report record count, distance, bounding box and centre of the track on stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepareRun(cmd, deps, flags)
			if err != nil {
				return err
			}
			summary, err := accumulate(cmd, r, nil)
			if err != nil {
				return err
			}
			text, value := roundedDistance(summary.Distance, r.settings.Precision)
			payload := summaryPayload{
				Distance: value,
				Unit:     string(summary.Unit),
				Records:  summary.Records,
				Pairs:    summary.Pairs,
				Bounds:   summary.Bounds,
				Centre:   summary.Centre,
			}
			return writeResult(cmd, r, inputOf(summary), renderSummary(summary, text), payload)
		},
	}
}

func renderSummary(summary trip.Summary, distance string) string {
	rows := [][2]string{
		{"records", strconv.Itoa(summary.Records)},
		{"pairs", strconv.Itoa(summary.Pairs)},
		{"distance", distance + " " + string(summary.Unit)},
	}
	if summary.Bounds != nil {
		b := summary.Bounds
		rows = append(rows,
			[2]string{"bounds", fmt.Sprintf("%s .. %s", formatPosition(domain.Position{Lat: b.MinLat, Lon: b.MinLon}), formatPosition(domain.Position{Lat: b.MaxLat, Lon: b.MaxLon}))},
			[2]string{"centre", formatPosition(*summary.Centre)},
		)
	}
	return output.RenderTable("", rows)
}

func formatPosition(p domain.Position) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
