package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	log "github.com/sirupsen/logrus"

	"terre-server/view"
)

// RenderMap draws the map view model as a geo scatter page: every marker in
// one series and the selected business, if any, highlighted in its own.
func RenderMap(w io.Writer, vm view.MapViewModel) error {
	points := make([]opts.GeoData, 0, len(vm.Markers))
	var selected []opts.GeoData
	for _, m := range vm.Markers {
		point := opts.GeoData{
			Name:  fmt.Sprintf("%s (%s)", m.Name, m.Category),
			Value: []float64{m.Position.Lng, m.Position.Lat},
		}
		if m.Selected {
			selected = append(selected, point)
			continue
		}
		points = append(points, point)
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "TerreFVG",
			Width:     "100%",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Aziende TerreFVG",
			Subtitle: fmt.Sprintf("centro %.4f, %.4f · zoom %d", vm.Center.Lat, vm.Center.Lng, vm.Zoom),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Aziende", types.ChartScatter, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#2f5d3a"}),
	)
	if len(selected) > 0 {
		geo.AddSeries("Selezionata", types.ChartEffectScatter, selected,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#8b1e2d"}),
		)
	}

	return geo.Render(w)
}

// WriteMapFile renders the map into an HTML file on disk.
func WriteMapFile(path string, vm view.MapViewModel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML file %q: %w", path, err)
	}
	defer f.Close()

	if err := RenderMap(f, vm); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	log.Infof("[MapPlotter] Map generated: %s (%d markers)", path, len(vm.Markers))
	return nil
}
