package templates

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/a-h/templ"
)

// Toggle is a link that flips one piece of report state.
type Toggle struct {
	Label  string
	Active bool
	URL    string
}

// ReportPage is everything the dataset page shows.
type ReportPage struct {
	Dataset   equipment.Dataset
	Table     view.ReportTable
	Columns   []Toggle
	Types     []Toggle
	ToggleAll Toggle
	ChartURLs []string
}

// Report renders a dataset summary, its charts and the sample-records table.
func Report(p ReportPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}

		h.component(ctx, summary(p.Dataset))

		for _, src := range p.ChartURLs {
			h.raw(`<img`)
			h.attr("src", src)
			h.attr("alt", "chart")
			h.raw(`>`)
		}

		h.raw(`<h2>Sample records</h2><p class="toggles">Columns: `)
		for _, c := range p.Columns {
			toggleLink(h, c)
		}
		h.raw(`</p><p class="toggles">Types: `)
		for _, t := range p.Types {
			toggleLink(h, t)
		}
		h.raw(`<a`)
		h.attr("href", p.ToggleAll.URL)
		h.raw(`>`)
		h.text(p.ToggleAll.Label)
		h.raw(`</a></p>`)

		h.component(ctx, ReportTable(p.Table))
		return h.err
	})
}

func summary(ds equipment.Dataset) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="panel"><h3>Summary</h3><p>Total equipment: `)
		h.text(strconv.Itoa(ds.TotalCount))
		h.raw(`</p><ul>`)
		for _, m := range []struct {
			label string
			value equipment.Metric
		}{
			{"Average flowrate", ds.Averages.Flowrate},
			{"Average pressure", ds.Averages.Pressure},
			{"Average temperature", ds.Averages.Temperature},
		} {
			h.raw(`<li>`)
			h.text(m.label + ": " + view.Format(m.value))
			h.raw(`</li>`)
		}
		h.raw(`</ul></div><div class="panel"><h3>Type distribution</h3><ul>`)

		types := make([]string, 0, len(ds.TypeDistribution))
		for t := range ds.TypeDistribution {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			h.raw(`<li>`)
			h.text(t + ": " + strconv.Itoa(ds.TypeDistribution[t]))
			h.raw(`</li>`)
		}
		h.raw(`</ul></div>`)
		return h.err
	})
}

func toggleLink(h *html, t Toggle) {
	h.raw(`<a`)
	h.attr("href", t.URL)
	if !t.Active {
		h.attr("class", "off")
	}
	h.raw(`>`)
	h.text(t.Label)
	h.raw(`</a>`)
}
