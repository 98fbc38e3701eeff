package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

const (
	chartWidth  = 900
	chartHeight = 400
)

// seriesColors cycle across line series.
var seriesColors = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("dc2626"), // red-600
	drawing.ColorFromHex("9333ea"), // purple-600
}

// renderChart draws a chart-ready record as PNG bytes.
func renderChart(data models.ChartData) ([]byte, error) {
	if len(data.Series) == 0 {
		return nil, fmt.Errorf("chart %q has no series", data.Title)
	}

	var buf bytes.Buffer
	var err error
	switch data.Kind {
	case "pie":
		err = renderPie(data, &buf)
	case "bar":
		err = renderBar(data, &buf)
	case "line":
		err = renderLine(data, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", data.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPie draws the first series. Non-positive slices are skipped.
func renderPie(data models.ChartData, buf *bytes.Buffer) error {
	var values []chart.Value
	for _, p := range data.Series[0].Points {
		if p.Value > 0 {
			values = append(values, chart.Value{Label: p.Label, Value: p.Value})
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("no positive values to plot")
	}
	pie := chart.PieChart{
		Title:  data.Title,
		Width:  chartHeight * 3 / 2,
		Height: chartHeight * 3 / 2,
		Values: values,
	}
	return pie.Render(chart.PNG, buf)
}

// renderBar draws the first series; further series are chart-data only.
func renderBar(data models.ChartData, buf *bytes.Buffer) error {
	points := data.Series[0].Points
	if len(points) == 0 {
		return fmt.Errorf("no values to plot")
	}
	bars := make([]chart.Value, len(points))
	negative, allZero := false, true
	for i, p := range points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Value}
		if p.Value < 0 {
			negative = true
		}
		if p.Value != 0 {
			allZero = false
		}
	}
	width := len(bars)*80 + 200
	if width < chartWidth {
		width = chartWidth
	}
	bar := chart.BarChart{
		Title:  data.Title,
		Width:  width,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth:     40,
		BarSpacing:   40,
		UseBaseValue: negative,
		BaseValue:    0,
		Bars:         bars,
	}
	if allZero {
		bar.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}
	return bar.Render(chart.PNG, buf)
}

// renderLine draws one continuous series per record series. X values come
// from "Year N" labels, falling back to the point index.
func renderLine(data models.ChartData, buf *bytes.Buffer) error {
	series := make([]chart.Series, 0, len(data.Series))
	for i, s := range data.Series {
		if len(s.Points) < 2 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			var year int
			if _, err := fmt.Sscanf(p.Label, "Year %d", &year); err == nil {
				xs[j] = float64(year)
			} else {
				xs[j] = float64(j)
			}
			ys[j] = p.Value
		}
		series = append(series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeColor: seriesColors[i%len(seriesColors)],
				StrokeWidth: 2.5,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("need at least 2 data points per series")
	}

	graph := chart.Chart{
		Title:  data.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Year",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.1fk", f/1000)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}
	return graph.Render(chart.PNG, buf)
}
