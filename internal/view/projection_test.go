package view

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

func nan() float64 { return math.NaN() }

func TestBuild_PumpScenario(t *testing.T) {
	ds := equipment.Dataset{Records: []equipment.Record{
		{Name: "Pump-1", Type: "Pump", Flowrate: equipment.Num(10), Pressure: equipment.Num(5), Temperature: equipment.Num(20)},
		{Name: "Valve-1", Type: "Valve", Flowrate: equipment.Num(2), Pressure: equipment.Num(1), Temperature: equipment.Num(15)},
	}}

	p := Build(ds, FilterConfig{SelectedType: "Pump"})

	if !reflect.DeepEqual(names(p.Records), []string{"Pump-1"}) {
		t.Errorf("filtered = %v, want [Pump-1]", names(p.Records))
	}
	if !reflect.DeepEqual(p.Labels, []string{"Pump-1"}) {
		t.Errorf("labels = %v, want [Pump-1]", p.Labels)
	}
	if len(p.Flowrate) != 1 || p.Flowrate[0] != equipment.Num(10) {
		t.Errorf("flowrate series = %v, want [10]", p.Flowrate)
	}
}

func TestProject_LengthInvariants(t *testing.T) {
	for _, n := range []int{0, 1, 49, 50, 51, 120} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			records := make([]equipment.Record, n)
			for i := range records {
				records[i] = equipment.Record{
					Name:        fmt.Sprintf("EQ-%03d", i),
					Type:        "Pump",
					Flowrate:    equipment.Num(float64(i)),
					Pressure:    equipment.Num(float64(i) / 2),
					Temperature: equipment.Num(float64(i) * 1.5),
				}
			}

			p := Project(records)

			if len(p.Labels) != n || len(p.Flowrate) != n || len(p.Pressure) != n || len(p.Temperature) != n {
				t.Fatalf("series lengths = %d/%d/%d/%d, want %d",
					len(p.Labels), len(p.Flowrate), len(p.Pressure), len(p.Temperature), n)
			}
			if want := min(50, n); len(p.TablePreview) != want {
				t.Errorf("len(TablePreview) = %d, want %d", len(p.TablePreview), want)
			}
			if p.Count() != n {
				t.Errorf("Count() = %d, want %d", p.Count(), n)
			}
			for i := range p.TablePreview {
				if p.TablePreview[i].Name != records[i].Name {
					t.Fatalf("TablePreview[%d] = %q, want %q", i, p.TablePreview[i].Name, records[i].Name)
				}
			}
		})
	}
}

func TestProject_ValuesVerbatim(t *testing.T) {
	records := []equipment.Record{
		{Name: "a", Flowrate: equipment.Num(1.23456), Pressure: equipment.Metric{}, Temperature: equipment.Num(-4)},
	}
	p := Project(records)

	if p.Flowrate[0].Float64 != 1.23456 {
		t.Errorf("flowrate = %v, want unrounded 1.23456", p.Flowrate[0].Float64)
	}
	if p.Pressure[0].OK() {
		t.Error("missing pressure should stay missing in the series")
	}
	if got := p.Series(equipment.ColumnTemperature); got[0].Float64 != -4 {
		t.Errorf("Series(Temperature)[0] = %v, want -4", got[0].Float64)
	}
	if got := p.Series(equipment.ColumnName); got != nil {
		t.Errorf("Series(Name) = %v, want nil", got)
	}
}

func TestProject_DoesNotAliasInput(t *testing.T) {
	records := sampleRecords()
	p := Project(records)
	records[0].Name = "changed"

	if p.Records[0].Name == "changed" || p.TablePreview[0].Name == "changed" {
		t.Error("projection shares backing storage with its input")
	}
}
