package view

import (
	"strings"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// AllTypes is the SelectedType value that disables type matching.
const AllTypes = "All"

// Range is an optional inclusive [Min, Max] bound on a metric.
// A nil bound is unset and always holds.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsSet reports whether either bound is set.
func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether m satisfies every set bound.
// Missing or non-numeric values fail any set bound.
func (r Range) Contains(m equipment.Metric) bool {
	if !r.IsSet() {
		return true
	}
	if !m.OK() {
		return false
	}
	if r.Min != nil && m.Float64 < *r.Min {
		return false
	}
	if r.Max != nil && m.Float64 > *r.Max {
		return false
	}
	return true
}

// Ranges holds one Range per metric.
type Ranges struct {
	Flowrate    Range `json:"flowrate"`
	Pressure    Range `json:"pressure"`
	Temperature Range `json:"temperature"`
}

// FilterConfig is the dashboard explorer's filter state.
type FilterConfig struct {
	SearchText   string `json:"search_text"`
	SelectedType string `json:"selected_type"`
	Ranges       Ranges `json:"ranges"`
}

// DefaultFilterConfig returns a config that matches every record.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{SelectedType: AllTypes}
}

// Matches reports whether r passes every predicate of c.
// An empty SelectedType is treated like AllTypes.
func (c FilterConfig) Matches(r equipment.Record) bool {
	if c.SearchText != "" &&
		!strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.SearchText)) {
		return false
	}
	if c.SelectedType != "" && c.SelectedType != AllTypes && r.Type != c.SelectedType {
		return false
	}
	return c.Ranges.Flowrate.Contains(r.Flowrate) &&
		c.Ranges.Pressure.Contains(r.Pressure) &&
		c.Ranges.Temperature.Contains(r.Temperature)
}

// Filter returns the records matching cfg in their original order.
// The input slice is not modified; the result is never nil.
func Filter(records []equipment.Record, cfg FilterConfig) []equipment.Record {
	result := make([]equipment.Record, 0, len(records))
	for _, r := range records {
		if cfg.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}
