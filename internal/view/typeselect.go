package view

import (
	"sort"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// TypeSelection is the multi-select state over a dataset's equipment types.
//
// An empty active set is legal and selects no rows; it is distinct from a
// fresh selection, which starts with every type active.
type TypeSelection struct {
	all    []string
	active map[string]bool
}

// NewTypeSelection discovers the distinct types in records and activates all
// of them.
func NewTypeSelection(records []equipment.Record) *TypeSelection {
	s := &TypeSelection{}
	s.Reset(records)
	return s
}

// Reset rediscovers types from a newly loaded dataset and reactivates all of
// them. Blank types are not selectable.
func (s *TypeSelection) Reset(records []equipment.Record) {
	seen := make(map[string]bool)
	s.all = s.all[:0]
	for _, r := range records {
		if r.Type == "" || seen[r.Type] {
			continue
		}
		seen[r.Type] = true
		s.all = append(s.all, r.Type)
	}
	sort.Strings(s.all)

	s.active = make(map[string]bool, len(s.all))
	for _, t := range s.all {
		s.active[t] = true
	}
}

// AllTypes returns every discovered type in ascending order.
func (s *TypeSelection) AllTypes() []string {
	out := make([]string, len(s.all))
	copy(out, s.all)
	return out
}

// ActiveTypes returns the active types in ascending order.
func (s *TypeSelection) ActiveTypes() []string {
	out := make([]string, 0, len(s.active))
	for _, t := range s.all {
		if s.active[t] {
			out = append(out, t)
		}
	}
	return out
}

// IsActive reports whether t is selected.
func (s *TypeSelection) IsActive(t string) bool {
	return s.active[t]
}

// Toggle adds t to the active set if absent and removes it if present.
// Types not present in the dataset are ignored.
func (s *TypeSelection) Toggle(t string) {
	if !s.known(t) {
		return
	}
	if s.active[t] {
		delete(s.active, t)
		return
	}
	s.active[t] = true
}

// SetActive makes exactly the given types active. Unknown types are ignored,
// so an empty or entirely unknown list selects nothing.
func (s *TypeSelection) SetActive(types []string) {
	s.active = make(map[string]bool, len(s.all))
	for _, t := range types {
		if s.known(t) {
			s.active[t] = true
		}
	}
}

// ToggleAll clears the selection when every type is active and selects every
// type otherwise. A partial selection therefore becomes a full one.
func (s *TypeSelection) ToggleAll() {
	if s.AllSelected() {
		s.active = make(map[string]bool, len(s.all))
		return
	}
	for _, t := range s.all {
		s.active[t] = true
	}
}

// AllSelected reports whether every discovered type is active.
func (s *TypeSelection) AllSelected() bool {
	return len(s.active) == len(s.all)
}

// Rows returns the records whose type is active, in order. With nothing
// active the result is empty, never the full input.
func (s *TypeSelection) Rows(records []equipment.Record) []equipment.Record {
	result := make([]equipment.Record, 0, len(records))
	if len(s.active) == 0 {
		return result
	}
	for _, r := range records {
		if s.active[r.Type] {
			result = append(result, r)
		}
	}
	return result
}

func (s *TypeSelection) known(t string) bool {
	i := sort.SearchStrings(s.all, t)
	return i < len(s.all) && s.all[i] == t
}
