package view

import "github.com/JonMunkholm/equipview/internal/equipment"

// ColumnVisibility tracks which report columns are shown.
// At least one column is always visible.
type ColumnVisibility struct {
	visible map[equipment.ColumnKey]bool
}

// NewColumnVisibility returns a controller with every column visible.
func NewColumnVisibility() *ColumnVisibility {
	v := &ColumnVisibility{visible: make(map[equipment.ColumnKey]bool, len(equipment.Columns))}
	for _, k := range equipment.Columns {
		v.visible[k] = true
	}
	return v
}

// Toggle flips the visibility of key. Hiding the last visible column and
// toggling an unknown key are rejected; Toggle reports whether state changed.
func (v *ColumnVisibility) Toggle(key equipment.ColumnKey) bool {
	if !key.Valid() {
		return false
	}
	if v.visible[key] && v.visibleCount() == 1 {
		return false
	}
	v.visible[key] = !v.visible[key]
	return true
}

// IsVisible reports whether key is currently shown.
func (v *ColumnVisibility) IsVisible(key equipment.ColumnKey) bool {
	return v.visible[key]
}

// VisibleColumns returns the visible columns in display order, independent
// of toggle history.
func (v *ColumnVisibility) VisibleColumns() []equipment.ColumnKey {
	cols := make([]equipment.ColumnKey, 0, len(equipment.Columns))
	for _, k := range equipment.Columns {
		if v.visible[k] {
			cols = append(cols, k)
		}
	}
	return cols
}

func (v *ColumnVisibility) visibleCount() int {
	n := 0
	for _, on := range v.visible {
		if on {
			n++
		}
	}
	return n
}
