package view

import "github.com/JonMunkholm/equipview/internal/equipment"

// PreviewLimit caps the on-screen table preview.
const PreviewLimit = 50

// Projection is the display-ready data derived from a filtered record set.
// Labels and every series share the order and length of Records.
type Projection struct {
	Records      []equipment.Record `json:"filtered_records"`
	Labels       []string           `json:"labels"`
	Flowrate     []equipment.Metric `json:"flowrate"`
	Pressure     []equipment.Metric `json:"pressure"`
	Temperature  []equipment.Metric `json:"temperature"`
	TablePreview []equipment.Record `json:"table_preview"`
}

// Project derives labels, per-metric series and the table preview from an
// already-filtered record set. Values are copied verbatim.
func Project(filtered []equipment.Record) Projection {
	n := len(filtered)
	p := Projection{
		Records:     make([]equipment.Record, n),
		Labels:      make([]string, n),
		Flowrate:    make([]equipment.Metric, n),
		Pressure:    make([]equipment.Metric, n),
		Temperature: make([]equipment.Metric, n),
	}
	copy(p.Records, filtered)

	for i, r := range filtered {
		p.Labels[i] = r.Name
		p.Flowrate[i] = r.Flowrate
		p.Pressure[i] = r.Pressure
		p.Temperature[i] = r.Temperature
	}

	p.TablePreview = make([]equipment.Record, min(PreviewLimit, n))
	copy(p.TablePreview, filtered)

	return p
}

// Build filters the dataset's records with cfg and projects the result.
func Build(ds equipment.Dataset, cfg FilterConfig) Projection {
	return Project(Filter(ds.Records, cfg))
}

// Series returns the series for a metric column, nil for non-metric columns.
func (p Projection) Series(k equipment.ColumnKey) []equipment.Metric {
	switch k {
	case equipment.ColumnFlowrate:
		return p.Flowrate
	case equipment.ColumnPressure:
		return p.Pressure
	case equipment.ColumnTemperature:
		return p.Temperature
	}
	return nil
}

// Count returns the number of filtered records.
func (p Projection) Count() int {
	return len(p.Records)
}
