package view

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// Placeholder is displayed for absent values.
const Placeholder = "—"

// Format renders a comparison cell. Nil, nil pointers and empty strings
// become the placeholder, numbers get two decimals, and anything else is
// printed verbatim.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return Placeholder
	case string:
		if x == "" {
			return Placeholder
		}
		return x
	case *string:
		if x == nil {
			return Placeholder
		}
		return Format(*x)
	case float64:
		return formatNumber(x)
	case *float64:
		if x == nil {
			return Placeholder
		}
		return formatNumber(*x)
	case float32:
		return formatNumber(float64(x))
	case int:
		return formatNumber(float64(x))
	case int8:
		return formatNumber(float64(x))
	case int16:
		return formatNumber(float64(x))
	case int32:
		return formatNumber(float64(x))
	case int64:
		return formatNumber(float64(x))
	case uint:
		return formatNumber(float64(x))
	case uint8:
		return formatNumber(float64(x))
	case uint16:
		return formatNumber(float64(x))
	case uint32:
		return formatNumber(float64(x))
	case uint64:
		return formatNumber(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Format(string(x))
		}
		return formatNumber(f)
	case equipment.Metric:
		if !x.OK() {
			return Placeholder
		}
		return formatNumber(x.Float64)
	case equipment.DiffStatus:
		return Format(string(x))
	case fmt.Stringer:
		return Format(x.String())
	default:
		return fmt.Sprint(v)
	}
}

// FormatFloat is Format specialized for optional numbers.
func FormatFloat(v *float64) string {
	return Format(v)
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// DeltaClass classifies the sign of a delta.
type DeltaClass string

const (
	DeltaIncrease  DeltaClass = "increase"
	DeltaDecrease  DeltaClass = "decrease"
	DeltaUnchanged DeltaClass = "unchanged"
	DeltaNone      DeltaClass = "none"
)

// CSSClass returns the stylesheet class for the delta cell, empty for none.
func (c DeltaClass) CSSClass() string {
	switch c {
	case DeltaIncrease:
		return "delta-up"
	case DeltaDecrease:
		return "delta-down"
	case DeltaUnchanged:
		return "delta-zero"
	}
	return ""
}

// ClassifyDelta returns the class of a delta; nil means none.
func ClassifyDelta(delta *float64) DeltaClass {
	switch {
	case delta == nil || math.IsNaN(*delta):
		return DeltaNone
	case *delta > 0:
		return DeltaIncrease
	case *delta < 0:
		return DeltaDecrease
	default:
		return DeltaUnchanged
	}
}

// DeltaCell is a formatted delta and its sign class.
type DeltaCell struct {
	Text  string     `json:"text"`
	Class DeltaClass `json:"class"`
}

func deltaCell(d *float64) DeltaCell {
	return DeltaCell{Text: FormatFloat(d), Class: ClassifyDelta(d)}
}

// ComparisonRow is a display-ready diff row. Deltas are taken from the
// producer as-is, never recomputed.
type ComparisonRow struct {
	EquipmentName    string    `json:"equipment_name"`
	TypeA            string    `json:"type_a"`
	TypeB            string    `json:"type_b"`
	FlowrateA        string    `json:"flowrate_a"`
	FlowrateB        string    `json:"flowrate_b"`
	FlowrateDelta    DeltaCell `json:"flowrate_delta"`
	PressureA        string    `json:"pressure_a"`
	PressureB        string    `json:"pressure_b"`
	PressureDelta    DeltaCell `json:"pressure_delta"`
	TemperatureA     string    `json:"temperature_a"`
	TemperatureB     string    `json:"temperature_b"`
	TemperatureDelta DeltaCell `json:"temperature_delta"`
	Status           string    `json:"status"`
}

// FormatRow formats one diff row.
func FormatRow(r equipment.DiffRow) ComparisonRow {
	return ComparisonRow{
		EquipmentName:    r.EquipmentName,
		TypeA:            Format(r.TypeA),
		TypeB:            Format(r.TypeB),
		FlowrateA:        FormatFloat(r.FlowrateA),
		FlowrateB:        FormatFloat(r.FlowrateB),
		FlowrateDelta:    deltaCell(r.FlowrateDelta),
		PressureA:        FormatFloat(r.PressureA),
		PressureB:        FormatFloat(r.PressureB),
		PressureDelta:    deltaCell(r.PressureDelta),
		TemperatureA:     FormatFloat(r.TemperatureA),
		TemperatureB:     FormatFloat(r.TemperatureB),
		TemperatureDelta: deltaCell(r.TemperatureDelta),
		Status:           string(r.Status),
	}
}

// FormatRows formats every row of a diff in order.
func FormatRows(diff equipment.Diff) []ComparisonRow {
	rows := make([]ComparisonRow, len(diff.Rows))
	for i, r := range diff.Rows {
		rows[i] = FormatRow(r)
	}
	return rows
}

// SummaryPanel is one side's headline numbers.
type SummaryPanel struct {
	TotalCount     int    `json:"total_count"`
	AvgFlowrate    string `json:"avg_flowrate"`
	AvgPressure    string `json:"avg_pressure"`
	AvgTemperature string `json:"avg_temperature"`
}

// ComparisonView is everything the compare page renders.
type ComparisonView struct {
	FileA   SummaryPanel          `json:"file_a"`
	FileB   SummaryPanel          `json:"file_b"`
	Summary equipment.DiffSummary `json:"summary"`
	Rows    []ComparisonRow       `json:"rows"`
}

// Empty reports whether there are no rows to show.
func (v ComparisonView) Empty() bool {
	return len(v.Rows) == 0
}

// FormatComparison formats a full comparison result.
func FormatComparison(res equipment.ComparisonResult) ComparisonView {
	return ComparisonView{
		FileA:   summaryPanel(res.FileA),
		FileB:   summaryPanel(res.FileB),
		Summary: res.Diff.Summary,
		Rows:    FormatRows(res.Diff),
	}
}

func summaryPanel(ds equipment.Dataset) SummaryPanel {
	return SummaryPanel{
		TotalCount:     ds.TotalCount,
		AvgFlowrate:    Format(ds.Averages.Flowrate),
		AvgPressure:    Format(ds.Averages.Pressure),
		AvgTemperature: Format(ds.Averages.Temperature),
	}
}
