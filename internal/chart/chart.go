// Package chart renders dataset views as PNG charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// MaxBars caps how many records a metric chart plots.
const MaxBars = 100

const (
	height     = 400
	barWidth   = 24
	barSpacing = 8
	minWidth   = 480
)

var metricColors = map[equipment.ColumnKey]drawing.Color{
	equipment.ColumnFlowrate:    drawing.ColorFromHex("4BC0C0"),
	equipment.ColumnPressure:    drawing.ColorFromHex("36A2EB"),
	equipment.ColumnTemperature: drawing.ColorFromHex("FF6384"),
}

// Metric plots one series of a projection, one bar per record in label
// order. Records without a valid value are left out.
func Metric(p view.Projection, key equipment.ColumnKey) ([]byte, error) {
	if _, ok := (equipment.Record{}).Metric(key); !ok {
		return nil, fmt.Errorf("chart %s: not a metric column", key)
	}
	series := p.Series(key)

	bars := make([]chart.Value, 0, min(len(series), MaxBars))
	for i, m := range series {
		if len(bars) == MaxBars {
			break
		}
		if !m.OK() {
			continue
		}
		bars = append(bars, chart.Value{
			Label: p.Labels[i],
			Value: m.Float64,
			Style: barStyle(metricColors[key]),
		})
	}
	return renderBars(key.Label(), bars)
}

// Averages plots the three dataset averages side by side.
func Averages(avg equipment.Averages) ([]byte, error) {
	metrics := []struct {
		key equipment.ColumnKey
		m   equipment.Metric
	}{
		{equipment.ColumnFlowrate, avg.Flowrate},
		{equipment.ColumnPressure, avg.Pressure},
		{equipment.ColumnTemperature, avg.Temperature},
	}

	var bars []chart.Value
	for _, x := range metrics {
		if !x.m.OK() {
			continue
		}
		bars = append(bars, chart.Value{
			Label: x.key.Label(),
			Value: x.m.Float64,
			Style: barStyle(metricColors[x.key]),
		})
	}
	return renderBars("Average", bars)
}

// TypeDistribution plots equipment counts per type as a pie, types in
// name order.
func TypeDistribution(dist map[string]int) ([]byte, error) {
	types := make([]string, 0, len(dist))
	for t, n := range dist {
		if n > 0 {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, ErrNoData
	}
	sort.Strings(types)

	values := make([]chart.Value, len(types))
	for i, t := range types {
		values[i] = chart.Value{Label: fmt.Sprintf("%s (%d)", t, dist[t]), Value: float64(dist[t])}
	}

	pie := chart.PieChart{
		Width:  height,
		Height: height,
		Values: values,
	}
	return render(pie)
}

func renderBars(yName string, bars []chart.Value) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = min(lo, b.Value)
		hi = max(hi, b.Value)
	}
	if hi == lo {
		hi = lo + 1
	}

	bc := chart.BarChart{
		Width:      max(minWidth, len(bars)*(barWidth+barSpacing)+120),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return render(bc)
}

type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func render(c renderer) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func barStyle(c drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   c,
		StrokeColor: c,
		StrokeWidth: 1,
	}
}
