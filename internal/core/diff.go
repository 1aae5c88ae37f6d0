package core

import (
	"sort"
	"strings"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// Compare joins two datasets by trimmed equipment name.
//
// Records with a blank name are skipped, and when a name repeats within one
// side only its first record takes part. Rows are sorted by name. Deltas are
// b minus a rounded to two decimals, present only when both sides hold a
// valid value. A row present on both sides is "same" when every delta is
// zero or absent, otherwise "changed".
func Compare(a, b []equipment.Record) equipment.Diff {
	mapA := byName(a)
	mapB := byName(b)

	names := make([]string, 0, len(mapA)+len(mapB))
	for name := range mapA {
		names = append(names, name)
	}
	for name := range mapB {
		if _, ok := mapA[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	diff := equipment.Diff{Rows: make([]equipment.DiffRow, 0, len(names))}
	for _, name := range names {
		ra, inA := mapA[name]
		rb, inB := mapB[name]

		row := equipment.DiffRow{EquipmentName: name}
		if inA {
			row.TypeA = typePtr(ra.Type)
			row.FlowrateA = ra.Flowrate.Ptr()
			row.PressureA = ra.Pressure.Ptr()
			row.TemperatureA = ra.Temperature.Ptr()
		}
		if inB {
			row.TypeB = typePtr(rb.Type)
			row.FlowrateB = rb.Flowrate.Ptr()
			row.PressureB = rb.Pressure.Ptr()
			row.TemperatureB = rb.Temperature.Ptr()
		}
		row.FlowrateDelta = delta(row.FlowrateA, row.FlowrateB)
		row.PressureDelta = delta(row.PressureA, row.PressureB)
		row.TemperatureDelta = delta(row.TemperatureA, row.TemperatureB)

		switch {
		case !inA:
			row.Status = equipment.StatusOnlyInB
			diff.Summary.OnlyInB++
		case !inB:
			row.Status = equipment.StatusOnlyInA
			diff.Summary.OnlyInA++
		default:
			row.Status = equipment.StatusChanged
			if unchanged(row.FlowrateDelta) && unchanged(row.PressureDelta) && unchanged(row.TemperatureDelta) {
				row.Status = equipment.StatusSame
			}
			diff.Summary.InBoth++
		}

		diff.Rows = append(diff.Rows, row)
	}

	return diff
}

func byName(records []equipment.Record) map[string]equipment.Record {
	m := make(map[string]equipment.Record, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		if _, seen := m[name]; !seen {
			m[name] = r
		}
	}
	return m
}

func typePtr(t string) *string {
	if t == "" {
		return nil
	}
	return &t
}

func delta(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := round2(*b - *a)
	return &d
}

func unchanged(d *float64) bool {
	return d == nil || *d == 0
}
