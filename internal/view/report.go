package view

import (
	"strconv"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

// Report is the sample-records view of one dataset: its preview rows seen
// through a column visibility and an equipment type selection.
type Report struct {
	Columns *ColumnVisibility
	Types   *TypeSelection

	rows []equipment.Record
}

// NewReport starts a report with every column visible and every type found
// in the dataset's records active.
func NewReport(ds equipment.Dataset) *Report {
	return &Report{
		Columns: NewColumnVisibility(),
		Types:   NewTypeSelection(ds.Records),
		rows:    ds.Preview,
	}
}

// ReportTable is the rendered state of a Report.
type ReportTable struct {
	Columns        []string   `json:"columns"`
	Rows           [][]string `json:"rows"`
	Empty          bool       `json:"empty"`
	AllTypes       []string   `json:"all_types"`
	ActiveTypes    []string   `json:"active_types"`
	ToggleAllLabel string     `json:"toggle_all_label"`
}

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No records match the selected equipment types."

// Table renders the visible columns of every row whose type is active.
func (r *Report) Table() ReportTable {
	cols := r.Columns.VisibleColumns()
	rows := r.Types.Rows(r.rows)

	t := ReportTable{
		Columns:     make([]string, len(cols)),
		Rows:        make([][]string, len(rows)),
		Empty:       len(rows) == 0,
		AllTypes:    r.Types.AllTypes(),
		ActiveTypes: r.Types.ActiveTypes(),
	}
	for i, c := range cols {
		t.Columns[i] = c.Label()
	}
	for i, rec := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = Cell(rec, c)
		}
		t.Rows[i] = cells
	}

	t.ToggleAllLabel = "Select All"
	if r.Types.AllSelected() {
		t.ToggleAllLabel = "Clear"
	}
	return t
}

// Cell returns the raw display value of one record column. Metrics are
// printed at full precision; missing metrics are blank.
func Cell(rec equipment.Record, c equipment.ColumnKey) string {
	switch c {
	case equipment.ColumnName:
		return rec.Name
	case equipment.ColumnType:
		return rec.Type
	}
	m, ok := rec.Metric(c)
	if !ok || !m.OK() {
		return ""
	}
	return strconv.FormatFloat(m.Float64, 'f', -1, 64)
}
