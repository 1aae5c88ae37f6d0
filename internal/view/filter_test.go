package view

import (
	"reflect"
	"testing"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

func ptr(f float64) *float64 { return &f }

func sampleRecords() []equipment.Record {
	return []equipment.Record{
		{Name: "Pump-1", Type: "Pump", Flowrate: equipment.Num(10), Pressure: equipment.Num(5), Temperature: equipment.Num(20)},
		{Name: "Valve-1", Type: "Valve", Flowrate: equipment.Num(2), Pressure: equipment.Num(1), Temperature: equipment.Num(15)},
		{Name: "Pump-2", Type: "Pump", Flowrate: equipment.Num(14), Pressure: equipment.Num(6.5), Temperature: equipment.Num(31)},
		{Name: "Compressor-A", Type: "Compressor", Flowrate: equipment.Num(120), Pressure: equipment.Num(8.2), Temperature: equipment.Num(95)},
		{Name: "Sensor-X", Type: "Sensor", Flowrate: equipment.Metric{}, Pressure: equipment.Num(0.5), Temperature: equipment.Num(22)},
	}
}

func names(records []equipment.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		cfg  FilterConfig
		want []string
	}{
		{
			name: "default matches everything",
			cfg:  DefaultFilterConfig(),
			want: []string{"Pump-1", "Valve-1", "Pump-2", "Compressor-A", "Sensor-X"},
		},
		{
			name: "zero value matches everything",
			cfg:  FilterConfig{},
			want: []string{"Pump-1", "Valve-1", "Pump-2", "Compressor-A", "Sensor-X"},
		},
		{
			name: "search is case-insensitive substring",
			cfg:  FilterConfig{SearchText: "pUMp", SelectedType: AllTypes},
			want: []string{"Pump-1", "Pump-2"},
		},
		{
			name: "type is exact",
			cfg:  FilterConfig{SelectedType: "Valve"},
			want: []string{"Valve-1"},
		},
		{
			name: "type does not match case variants",
			cfg:  FilterConfig{SelectedType: "valve"},
			want: []string{},
		},
		{
			name: "min bound inclusive",
			cfg:  FilterConfig{SelectedType: AllTypes, Ranges: Ranges{Flowrate: Range{Min: ptr(10)}}},
			want: []string{"Pump-1", "Pump-2", "Compressor-A"},
		},
		{
			name: "max bound inclusive",
			cfg:  FilterConfig{SelectedType: AllTypes, Ranges: Ranges{Temperature: Range{Max: ptr(20)}}},
			want: []string{"Pump-1", "Valve-1"},
		},
		{
			name: "missing metric fails a set bound",
			cfg:  FilterConfig{SelectedType: AllTypes, Ranges: Ranges{Flowrate: Range{Max: ptr(1000)}}},
			want: []string{"Pump-1", "Valve-1", "Pump-2", "Compressor-A"},
		},
		{
			name: "missing metric passes when its range is unset",
			cfg:  FilterConfig{SelectedType: "Sensor", Ranges: Ranges{Pressure: Range{Min: ptr(0)}}},
			want: []string{"Sensor-X"},
		},
		{
			name: "predicates are ANDed",
			cfg: FilterConfig{
				SearchText:   "pump",
				SelectedType: "Pump",
				Ranges:       Ranges{Pressure: Range{Min: ptr(6), Max: ptr(7)}},
			},
			want: []string{"Pump-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(sampleRecords(), tt.cfg))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_NaNFailsBounds(t *testing.T) {
	records := []equipment.Record{
		{Name: "nan", Type: "Pump", Flowrate: equipment.Metric{Float64: nan(), Valid: true}},
	}
	cfg := FilterConfig{Ranges: Ranges{Flowrate: Range{Min: ptr(-1e308)}}}
	if got := Filter(records, cfg); len(got) != 0 {
		t.Errorf("expected NaN flowrate to be excluded, got %v", names(got))
	}
}

func TestFilter_PreservesOrderAndIsIdempotent(t *testing.T) {
	records := sampleRecords()
	cfg := FilterConfig{SearchText: "-", Ranges: Ranges{Pressure: Range{Min: ptr(1)}}}

	once := Filter(records, cfg)
	twice := Filter(once, cfg)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: %v vs %v", names(once), names(twice))
	}

	// every result appears in the input, in increasing index order
	last := -1
	for _, r := range once {
		idx := -1
		for i := range records {
			if records[i].Name == r.Name {
				idx = i
				break
			}
		}
		if idx <= last {
			t.Fatalf("record %q out of order or not in input", r.Name)
		}
		last = idx
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := sampleRecords()

	_ = Filter(records, FilterConfig{SelectedType: "Pump"})

	if !reflect.DeepEqual(records, before) {
		t.Error("Filter modified its input")
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, DefaultFilterConfig())
	if got == nil || len(got) != 0 {
		t.Errorf("Filter(nil) = %#v, want empty non-nil slice", got)
	}
}
