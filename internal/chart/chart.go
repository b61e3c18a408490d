package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

// Chart colors, matched to the dashboard page theme.
var (
	backgroundColor = color.RGBA{R: 25, G: 25, B: 25, A: 255}
	accentColor     = color.RGBA{R: 161, G: 137, B: 114, A: 255}
	gridColor       = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	labelColor      = color.RGBA{R: 222, G: 222, B: 222, A: 255}
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
	barWidth    = vg.Points(20)
)

// TopCitiesPNG renders the city ranking as a bar chart PNG. An empty ranking
// produces an empty themed chart rather than an error, so the dashboard can
// always show the panel.
func TopCitiesPNG(entries []domain.CityCount) ([]byte, error) {
	p := plot.New()
	applyTheme(p)
	p.Title.Text = "Top 10 Cities by Skyscraper Count"
	p.Y.Label.Text = "Skyscrapers"

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		labels[i] = e.City
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.Color = accentColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XCenter

	return renderPNG(p)
}

// TrendPNG renders completions per year as a line chart PNG. The series is
// already densified, so gap years plot as zero instead of vanishing.
func TrendPNG(series []domain.YearCount) ([]byte, error) {
	p := plot.New()
	applyTheme(p)
	p.Title.Text = "Skyscrapers Completed per Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Completions"

	points := make(plotter.XYs, len(series))
	for i, yc := range series {
		points[i].X = float64(yc.Year)
		points[i].Y = float64(yc.Count)
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("build line chart: %w", err)
	}
	line.Color = accentColor
	line.Width = vg.Points(2)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor

	p.Add(grid, line)

	return renderPNG(p)
}

func applyTheme(p *plot.Plot) {
	p.BackgroundColor = backgroundColor
	p.Title.TextStyle.Color = labelColor
	p.Title.TextStyle.Font.Size = vg.Points(14)

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Label.TextStyle.Color = labelColor
		axis.LineStyle.Color = labelColor
		axis.Tick.Label.Color = labelColor
		axis.Tick.LineStyle.Color = labelColor
	}
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
