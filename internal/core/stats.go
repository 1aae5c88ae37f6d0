package core

import (
	"math"
	"strings"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// PreviewRows is how many leading records a dataset summary carries as its
// preview.
const PreviewRows = 10

// ComputeStats summarizes parsed records. Averages skip invalid metrics and
// are rounded to two decimals; a metric with no valid values has no average.
// Types that are blank are left out of the distribution.
func ComputeStats(records []equipment.Record) equipment.Dataset {
	ds := equipment.Dataset{
		TotalCount:       len(records),
		TypeDistribution: make(map[string]int),
		Records:          records,
	}
	if ds.Records == nil {
		ds.Records = []equipment.Record{}
	}

	var flow, press, temp mean
	for _, r := range records {
		flow.add(r.Flowrate)
		press.add(r.Pressure)
		temp.add(r.Temperature)

		if strings.TrimSpace(r.Type) != "" {
			ds.TypeDistribution[r.Type]++
		}
	}
	ds.Averages = equipment.Averages{
		Flowrate:    flow.value(),
		Pressure:    press.value(),
		Temperature: temp.value(),
	}

	n := min(len(ds.Records), PreviewRows)
	ds.Preview = ds.Records[:n:n]

	return ds
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v equipment.Metric) {
	if v.OK() {
		m.sum += v.Float64
		m.n++
	}
}

func (m *mean) value() equipment.Metric {
	if m.n == 0 {
		return equipment.Metric{}
	}
	return equipment.Num(round2(m.sum / float64(m.n)))
}

// round2 rounds half away from zero to two decimals.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
