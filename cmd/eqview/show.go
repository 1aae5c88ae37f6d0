package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/JonMunkholm/equipview/internal/chart"
	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
)

// filterFlags binds the filter options shared by show.
type filterFlags struct {
	search      string
	typ         string
	flowMin     optFloat
	flowMax     optFloat
	pressureMin optFloat
	pressureMax optFloat
	tempMin     optFloat
	tempMax     optFloat
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "Case-insensitive substring of the equipment name")
	fs.StringVar(&f.typ, "type", view.AllTypes, "Equipment type, or "+view.AllTypes)
	fs.Var(&f.flowMin, "flow-min", "Minimum flowrate")
	fs.Var(&f.flowMax, "flow-max", "Maximum flowrate")
	fs.Var(&f.pressureMin, "pressure-min", "Minimum pressure")
	fs.Var(&f.pressureMax, "pressure-max", "Maximum pressure")
	fs.Var(&f.tempMin, "temp-min", "Minimum temperature")
	fs.Var(&f.tempMax, "temp-max", "Maximum temperature")
}

func (f *filterFlags) config() view.FilterConfig {
	return view.FilterConfig{
		SearchText:   f.search,
		SelectedType: f.typ,
		Ranges: view.Ranges{
			Flowrate:    view.Range{Min: f.flowMin.v, Max: f.flowMax.v},
			Pressure:    view.Range{Min: f.pressureMin.v, Max: f.pressureMax.v},
			Temperature: view.Range{Min: f.tempMin.v, Max: f.tempMax.v},
		},
	}
}

func runShow() {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	var filters filterFlags
	filters.register(fs)
	chartMetric := fs.String("chart", "", "Also write a PNG chart of this metric (flowrate, pressure, temperature)")
	chartOut := fs.String("o", "chart.png", "Chart output file")
	fs.Parse(os.Args[1:])
	id := requireID(fs.Args(), "eqview show [filters] <id>")

	cfg := loadConfig()
	ds, err := newClient(cfg).Dataset(context.Background(), id)
	if err != nil {
		fatalf("load %d: %w", id, err)
	}

	p := view.Build(ds, filters.config())
	fmt.Println(renderSummary(ds))
	fmt.Println(renderProjection(p))

	if *chartMetric == "" {
		return
	}
	key, _ := equipment.ParseColumn(*chartMetric)
	img, err := chart.Metric(p, key)
	if err != nil {
		fatalf("chart: %w", err)
	}
	if err := os.WriteFile(*chartOut, img, 0o644); err != nil {
		fatalf("write chart: %w", err)
	}
	fmt.Println(mutedStyle.Render("chart written to " + *chartOut))
}
