package view

import (
	"reflect"
	"testing"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

func TestTypeSelection_DiscoversSortedDistinctTypes(t *testing.T) {
	records := append(sampleRecords(), equipment.Record{Name: "blank"})
	s := NewTypeSelection(records)

	want := []string{"Compressor", "Pump", "Sensor", "Valve"}
	if got := s.AllTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllTypes() = %v, want %v", got, want)
	}
	if got := s.ActiveTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveTypes() = %v, want %v", got, want)
	}
	if !s.AllSelected() {
		t.Error("fresh selection should have every type active")
	}
}

func TestTypeSelection_Toggle(t *testing.T) {
	s := NewTypeSelection(sampleRecords())

	s.Toggle("Pump")
	if s.IsActive("Pump") {
		t.Error("Toggle(Pump) should deactivate Pump")
	}
	if s.AllSelected() {
		t.Error("AllSelected() should be false after removing a type")
	}

	s.Toggle("Pump")
	if !s.IsActive("Pump") {
		t.Error("second Toggle(Pump) should reactivate Pump")
	}

	s.Toggle("Turbine")
	if s.IsActive("Turbine") {
		t.Error("types absent from the dataset are not selectable")
	}
}

func TestTypeSelection_ToggleAllIsInvolutiveFromAll(t *testing.T) {
	s := NewTypeSelection(sampleRecords())
	before := s.ActiveTypes()

	s.ToggleAll()
	if got := s.ActiveTypes(); len(got) != 0 {
		t.Fatalf("ToggleAll() from all = %v, want empty", got)
	}

	s.ToggleAll()
	if got := s.ActiveTypes(); !reflect.DeepEqual(got, before) {
		t.Errorf("ToggleAll() twice = %v, want %v", got, before)
	}
}

func TestTypeSelection_ToggleAllFromPartialSelectsAll(t *testing.T) {
	s := NewTypeSelection(sampleRecords())
	s.Toggle("Valve")

	s.ToggleAll()
	if !s.AllSelected() {
		t.Errorf("ToggleAll() from partial = %v, want all types", s.ActiveTypes())
	}
}

func TestTypeSelection_EmptySelectionYieldsNoRows(t *testing.T) {
	records := []equipment.Record{
		{Name: "Pump-1", Type: "Pump", Flowrate: equipment.Num(10), Pressure: equipment.Num(5), Temperature: equipment.Num(20)},
		{Name: "Valve-1", Type: "Valve", Flowrate: equipment.Num(2), Pressure: equipment.Num(1), Temperature: equipment.Num(15)},
	}
	s := NewTypeSelection(records)
	s.ToggleAll()

	got := s.Rows(records)
	if got == nil || len(got) != 0 {
		t.Errorf("Rows() with nothing active = %v, want empty slice", names(got))
	}
}

func TestTypeSelection_Rows(t *testing.T) {
	s := NewTypeSelection(sampleRecords())
	s.Toggle("Pump")
	s.Toggle("Sensor")

	want := []string{"Valve-1", "Compressor-A"}
	if got := names(s.Rows(sampleRecords())); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %v, want %v", got, want)
	}
}

func TestTypeSelection_ResetReactivatesAll(t *testing.T) {
	s := NewTypeSelection(sampleRecords())
	s.ToggleAll()

	s.Reset([]equipment.Record{{Name: "t", Type: "Turbine"}})
	if got := s.ActiveTypes(); !reflect.DeepEqual(got, []string{"Turbine"}) {
		t.Errorf("ActiveTypes() after Reset = %v, want [Turbine]", got)
	}
}

func TestTypeSelection_SetActive(t *testing.T) {
	s := NewTypeSelection(sampleRecords())
	all := s.AllTypes()

	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{"subset", []string{all[0]}, []string{all[0]}},
		{"unknown ignored", []string{"Turbine", all[0]}, []string{all[0]}},
		{"duplicates", []string{all[0], all[0]}, []string{all[0]}},
		{"empty selects none", nil, []string{}},
		{"everything", all, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetActive(tt.types)
			if got := s.ActiveTypes(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ActiveTypes() = %v, want %v", got, tt.want)
			}
		})
	}
}
