package equipment

import (
	"fmt"
	"strings"
)

// ColumnKey identifies one displayable record column.
// The declaration order is the display order.
type ColumnKey int

const (
	ColumnName ColumnKey = iota
	ColumnType
	ColumnFlowrate
	ColumnPressure
	ColumnTemperature
)

// Columns lists every column in display order.
var Columns = []ColumnKey{ColumnName, ColumnType, ColumnFlowrate, ColumnPressure, ColumnTemperature}

// Label returns the column header.
func (k ColumnKey) Label() string {
	switch k {
	case ColumnName:
		return HeaderName
	case ColumnType:
		return HeaderType
	case ColumnFlowrate:
		return HeaderFlowrate
	case ColumnPressure:
		return HeaderPressure
	case ColumnTemperature:
		return HeaderTemperature
	default:
		return fmt.Sprintf("Column(%d)", int(k))
	}
}

func (k ColumnKey) String() string {
	return k.Label()
}

// Valid reports whether k is one of the enumerated columns.
func (k ColumnKey) Valid() bool {
	return k >= ColumnName && k <= ColumnTemperature
}

// ParseColumn resolves a header label or short alias ("name", "flow",
// "temp", ...) case-insensitively.
func ParseColumn(s string) (ColumnKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equipment name", "equipment_name", "name":
		return ColumnName, true
	case "type":
		return ColumnType, true
	case "flowrate", "flow":
		return ColumnFlowrate, true
	case "pressure":
		return ColumnPressure, true
	case "temperature", "temp":
		return ColumnTemperature, true
	}
	return 0, false
}

// Metric returns the numeric value of a metric column and whether k is one.
func (r Record) Metric(k ColumnKey) (Metric, bool) {
	switch k {
	case ColumnFlowrate:
		return r.Flowrate, true
	case ColumnPressure:
		return r.Pressure, true
	case ColumnTemperature:
		return r.Temperature, true
	}
	return Metric{}, false
}
