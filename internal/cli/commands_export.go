package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/service/output"
)

const gpxVersion = "1.1"

func newExportCommand(deps Dependencies, flags *globalFlags) *cobra.Command {
	var trackName string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the track on stdin as GPX (--format is ignored).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepareRun(cmd, deps, flags)
			if err != nil {
				return err
			}
			points := make([]gpx.GPXPoint, 0)
			_, err = accumulate(cmd, r, func(p domain.Position) {
				points = append(points, gpx.GPXPoint{
					Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lon},
				})
			})
			if err != nil {
				return err
			}
			document, err := buildGPX(trackName, points)
			if err != nil {
				return emitError(cmd, r.settings.Format, r.settings, output.Failure{Code: codeOutputError, Message: err.Error()})
			}
			return writeTable(cmd, r, document)
		},
	}
	cmd.Flags().StringVar(&trackName, "name", "logtrip", "Track name written to the GPX document.")
	return cmd
}

func buildGPX(name string, points []gpx.GPXPoint) (string, error) {
	g := gpx.GPX{
		Version: gpxVersion,
		Creator: "logtrip",
		Name:    name,
		Tracks: []gpx.GPXTrack{
			{
				Name:     name,
				Segments: []gpx.GPXTrackSegment{{Points: points}},
			},
		},
	}
	xmlBytes, err := g.ToXml(gpx.ToXmlParams{Version: gpxVersion, Indent: true})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(xmlBytes), "\n"), nil
}
