package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorBorder = lipgloss.Color("#30363d")
	colorMuted  = lipgloss.Color("#8b949e")
	colorAccent = lipgloss.Color("#58a6ff")
	colorUp     = lipgloss.Color("#3fb950")
	colorDown   = lipgloss.Color("#f85149")
	colorStar   = lipgloss.Color("#d29922")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1).MarginRight(1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...)
}

func plainStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

func renderHistory(items []equipment.HistoryItem, favs *view.Favorites, favoriteCount int) string {
	if len(items) == 0 {
		return mutedStyle.Render("No uploads.")
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		star := ""
		if favs.IsFavorite(item.ID) {
			star = "★"
		}
		rows[i] = []string{star, strconv.FormatInt(item.ID, 10), item.File, item.UploadedAt.Local().Format("2006-01-02 15:04:05")}
	}

	t := newTable("", "ID", "File", "Uploaded").Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row != table.HeaderRow && col == 0 {
				return cellStyle.Foreground(colorStar)
			}
			return plainStyle(row, col)
		})

	return t.String() + "\n" + mutedStyle.Render(fmt.Sprintf("%d favorite(s)", favoriteCount))
}

// renderSummary shows the totals, averages and type distribution side by side.
func renderSummary(ds equipment.Dataset) string {
	totals := strings.Join([]string{
		titleStyle.Render("Summary"),
		"Total equipment:  " + strconv.Itoa(ds.TotalCount),
		"Avg flowrate:     " + view.Format(ds.Averages.Flowrate),
		"Avg pressure:     " + view.Format(ds.Averages.Pressure),
		"Avg temperature:  " + view.Format(ds.Averages.Temperature),
	}, "\n")

	types := make([]string, 0, len(ds.TypeDistribution))
	for t := range ds.TypeDistribution {
		types = append(types, t)
	}
	sort.Strings(types)
	lines := []string{titleStyle.Render("Types")}
	for _, t := range types {
		lines = append(lines, fmt.Sprintf("%-16s %d", t, ds.TypeDistribution[t]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(totals),
		panelStyle.Render(strings.Join(lines, "\n")),
	)
}

// renderProjection lists the filtered records in label order.
func renderProjection(p view.Projection) string {
	if p.Count() == 0 {
		return mutedStyle.Render("No equipment matches the filters.")
	}

	headers := make([]string, len(equipment.Columns))
	for i, c := range equipment.Columns {
		headers[i] = c.Label()
	}
	rows := make([][]string, len(p.Records))
	for i, rec := range p.Records {
		rows[i] = []string{
			p.Labels[i],
			rec.Type,
			view.Format(p.Flowrate[i]),
			view.Format(p.Pressure[i]),
			view.Format(p.Temperature[i]),
		}
	}

	t := newTable(headers...).Rows(rows...).StyleFunc(plainStyle)
	return t.String() + "\n" + mutedStyle.Render(fmt.Sprintf("%d record(s)", p.Count()))
}

// renderReport prints the sample-records table with the type selection
// underneath.
func renderReport(rt view.ReportTable) string {
	var b strings.Builder
	if rt.Empty {
		b.WriteString(mutedStyle.Render(view.EmptyMessage))
	} else {
		b.WriteString(newTable(rt.Columns...).Rows(rt.Rows...).StyleFunc(plainStyle).String())
	}
	b.WriteString("\n")

	active := make(map[string]bool, len(rt.ActiveTypes))
	for _, t := range rt.ActiveTypes {
		active[t] = true
	}
	marks := make([]string, len(rt.AllTypes))
	for i, t := range rt.AllTypes {
		if active[t] {
			marks[i] = "[x] " + t
		} else {
			marks[i] = mutedStyle.Render("[ ] " + t)
		}
	}
	b.WriteString("Types: " + strings.Join(marks, "  "))
	b.WriteString("\n" + mutedStyle.Render("-toggle-all: "+rt.ToggleAllLabel))
	return b.String()
}

// deltaColumns are the comparison table columns holding deltas.
var deltaColumns = map[int]func(view.ComparisonRow) view.DeltaCell{
	5:  func(r view.ComparisonRow) view.DeltaCell { return r.FlowrateDelta },
	8:  func(r view.ComparisonRow) view.DeltaCell { return r.PressureDelta },
	11: func(r view.ComparisonRow) view.DeltaCell { return r.TemperatureDelta },
}

func deltaStyle(c view.DeltaClass) lipgloss.Style {
	switch c {
	case view.DeltaIncrease:
		return cellStyle.Foreground(colorUp)
	case view.DeltaDecrease:
		return cellStyle.Foreground(colorDown)
	case view.DeltaUnchanged:
		return cellStyle.Foreground(colorMuted)
	}
	return cellStyle
}

func renderComparison(v view.ComparisonView) string {
	panel := func(title string, p view.SummaryPanel) string {
		return panelStyle.Render(strings.Join([]string{
			titleStyle.Render(title),
			"Total:            " + strconv.Itoa(p.TotalCount),
			"Avg flowrate:     " + p.AvgFlowrate,
			"Avg pressure:     " + p.AvgPressure,
			"Avg temperature:  " + p.AvgTemperature,
		}, "\n"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel("File A", v.FileA), panel("File B", v.FileB)))
	b.WriteString(fmt.Sprintf("\nOnly in A: %d   Only in B: %d   In both: %d\n",
		v.Summary.OnlyInA, v.Summary.OnlyInB, v.Summary.InBoth))

	if v.Empty() {
		b.WriteString(mutedStyle.Render("No equipment to compare."))
		return b.String()
	}

	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = []string{
			r.EquipmentName, r.TypeA, r.TypeB,
			r.FlowrateA, r.FlowrateB, r.FlowrateDelta.Text,
			r.PressureA, r.PressureB, r.PressureDelta.Text,
			r.TemperatureA, r.TemperatureB, r.TemperatureDelta.Text,
			r.Status,
		}
	}

	t := newTable(
		"Equipment", "Type A", "Type B",
		"Flow A", "Flow B", "Δ",
		"Press A", "Press B", "Δ",
		"Temp A", "Temp B", "Δ",
		"Status",
	).Rows(rows...).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if cell, ok := deltaColumns[col]; ok && row >= 0 && row < len(v.Rows) {
			return deltaStyle(cell(v.Rows[row]).Class)
		}
		return cellStyle
	})
	b.WriteString(t.String())
	return b.String()
}
