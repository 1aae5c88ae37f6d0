// Package equipment defines the data model shared by the server, the view
// engine, and the CLI client: telemetry records, dataset summaries, and
// pairwise comparison results.
//
// JSON field names follow the upload/history/compare wire format, so the
// same types decode server responses and encode them.
package equipment

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// CSV header names for the required columns.
const (
	HeaderName        = "Equipment Name"
	HeaderType        = "Type"
	HeaderFlowrate    = "Flowrate"
	HeaderPressure    = "Pressure"
	HeaderTemperature = "Temperature"
)

// RequiredHeaders lists the columns every uploaded file must contain.
var RequiredHeaders = []string{HeaderName, HeaderType, HeaderFlowrate, HeaderPressure, HeaderTemperature}

// Metric is a nullable numeric telemetry value.
// Valid is false when the source cell was empty or not a number.
type Metric struct {
	Float64 float64
	Valid   bool
}

// Num returns a valid Metric holding v.
func Num(v float64) Metric {
	return Metric{Float64: v, Valid: true}
}

// OK reports whether the metric holds a usable number.
// A NaN marked Valid is still unusable.
func (m Metric) OK() bool {
	return m.Valid && !math.IsNaN(m.Float64)
}

// Ptr returns the value as a pointer, nil when unusable.
func (m Metric) Ptr() *float64 {
	if !m.OK() {
		return nil
	}
	v := m.Float64
	return &v
}

// MarshalJSON encodes unusable metrics as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.OK() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Float64, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number, null, or a numeric string. Anything else
// decodes to an invalid metric rather than failing the whole record.
func (m *Metric) UnmarshalJSON(b []byte) error {
	*m = Metric{}

	var n *float64
	if err := json.Unmarshal(b, &n); err == nil {
		if n != nil {
			*m = Num(*n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*m = Num(f)
		}
	}
	return nil
}

// Record is one equipment telemetry row.
type Record struct {
	Name        string `json:"Equipment Name"`
	Type        string `json:"Type"`
	Flowrate    Metric `json:"Flowrate"`
	Pressure    Metric `json:"Pressure"`
	Temperature Metric `json:"Temperature"`
}

// Averages holds per-metric means rounded to two decimals. A metric with no
// numeric values in the dataset has no mean and encodes as null.
type Averages struct {
	Flowrate    Metric `json:"flowrate"`
	Pressure    Metric `json:"pressure"`
	Temperature Metric `json:"temperature"`
}

// Dataset is an uploaded file's records plus the aggregates computed when
// it was analyzed. Consumers display the aggregates as-is.
type Dataset struct {
	FileID           int64          `json:"file_id,omitempty"`
	UploadedAt       *time.Time     `json:"uploaded_at,omitempty"`
	TotalCount       int            `json:"total_count"`
	Averages         Averages       `json:"averages"`
	TypeDistribution map[string]int `json:"type_distribution"`
	Preview          []Record       `json:"preview"`
	Records          []Record       `json:"records"`
}

// HistoryItem is one entry of the upload history list.
type HistoryItem struct {
	ID         int64     `json:"id"`
	UploadID   string    `json:"upload_id"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DiffStatus classifies a comparison row. It is assigned by the producer of
// the diff and never inferred by consumers.
type DiffStatus string

const (
	StatusSame    DiffStatus = "same"
	StatusChanged DiffStatus = "changed"
	StatusOnlyInA DiffStatus = "only_in_a"
	StatusOnlyInB DiffStatus = "only_in_b"
)

// DiffRow is the per-equipment result of joining two datasets by name.
// Side-specific fields are nil when the equipment is absent from that side.
type DiffRow struct {
	EquipmentName    string     `json:"equipment_name"`
	TypeA            *string    `json:"type_a"`
	TypeB            *string    `json:"type_b"`
	FlowrateA        *float64   `json:"flowrate_a"`
	FlowrateB        *float64   `json:"flowrate_b"`
	FlowrateDelta    *float64   `json:"flowrate_delta"`
	PressureA        *float64   `json:"pressure_a"`
	PressureB        *float64   `json:"pressure_b"`
	PressureDelta    *float64   `json:"pressure_delta"`
	TemperatureA     *float64   `json:"temperature_a"`
	TemperatureB     *float64   `json:"temperature_b"`
	TemperatureDelta *float64   `json:"temperature_delta"`
	Status           DiffStatus `json:"status"`
}

// DiffSummary counts rows by side.
type DiffSummary struct {
	OnlyInA int `json:"only_in_a"`
	OnlyInB int `json:"only_in_b"`
	InBoth  int `json:"in_both"`
}

// Diff is the pairwise reconciliation of two datasets.
type Diff struct {
	Summary DiffSummary `json:"summary"`
	Rows    []DiffRow   `json:"rows"`
}

// ComparisonResult is returned by the compare endpoint.
type ComparisonResult struct {
	FileA Dataset `json:"file_a"`
	FileB Dataset `json:"file_b"`
	Diff  Diff    `json:"diff"`
}
