package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/a-h/templ"
)

// Comparison renders both summary panels, the diff counts and the row table.
func Comparison(v view.ComparisonView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}

		panel(h, "File A", v.FileA)
		panel(h, "File B", v.FileB)

		h.rawf(`<p>Only in A: %d &middot; Only in B: %d &middot; In both: %d</p>`,
			v.Summary.OnlyInA, v.Summary.OnlyInB, v.Summary.InBoth)

		if v.Empty() {
			h.raw(`<p>No equipment to compare.</p>`)
			return h.err
		}

		h.raw(`<table><thead><tr><th>Equipment</th><th>Type A</th><th>Type B</th>` +
			`<th>Flowrate A</th><th>Flowrate B</th><th>&Delta;</th>` +
			`<th>Pressure A</th><th>Pressure B</th><th>&Delta;</th>` +
			`<th>Temperature A</th><th>Temperature B</th><th>&Delta;</th>` +
			`<th>Status</th></tr></thead><tbody>`)
		for _, r := range v.Rows {
			h.raw(`<tr`)
			h.attr("class", "status-"+r.Status)
			h.raw(`>`)
			for _, cell := range []string{r.EquipmentName, r.TypeA, r.TypeB, r.FlowrateA, r.FlowrateB} {
				td(h, cell)
			}
			deltaTD(h, r.FlowrateDelta)
			td(h, r.PressureA)
			td(h, r.PressureB)
			deltaTD(h, r.PressureDelta)
			td(h, r.TemperatureA)
			td(h, r.TemperatureB)
			deltaTD(h, r.TemperatureDelta)
			td(h, r.Status)
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

func panel(h *html, title string, p view.SummaryPanel) {
	h.raw(`<div class="panel"><h3>`)
	h.text(title)
	h.raw(`</h3><ul><li>Total: `)
	h.text(strconv.Itoa(p.TotalCount))
	h.raw(`</li><li>Avg flowrate: `)
	h.text(p.AvgFlowrate)
	h.raw(`</li><li>Avg pressure: `)
	h.text(p.AvgPressure)
	h.raw(`</li><li>Avg temperature: `)
	h.text(p.AvgTemperature)
	h.raw(`</li></ul></div>`)
}

func td(h *html, s string) {
	h.raw(`<td>`)
	h.text(s)
	h.raw(`</td>`)
}

func deltaTD(h *html, d view.DeltaCell) {
	h.raw(`<td`)
	if cls := d.Class.CSSClass(); cls != "" {
		h.attr("class", cls)
	}
	h.raw(`>`)
	h.text(d.Text)
	h.raw(`</td>`)
}
