package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
)

// reportFlags is the column and type state of a report, applied in the
// order: hide, types, toggle, toggle-all.
type reportFlags struct {
	hide      listFlag
	types     listFlag
	typesSet  bool
	toggle    listFlag
	toggleAll bool
}

func (f *reportFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.hide, "hide", "Columns to hide (name, type, flowrate, pressure, temperature); repeatable")
	fs.Func("types", "Only these equipment types (comma-separated; empty for none)", func(s string) error {
		f.typesSet = true
		return f.types.Set(s)
	})
	fs.Var(&f.toggle, "toggle", "Equipment types to toggle; repeatable")
	fs.BoolVar(&f.toggleAll, "toggle-all", false, "Clear all types if all are selected, otherwise select all")
}

func (f *reportFlags) apply(rep *view.Report) error {
	for _, name := range f.hide {
		key, ok := equipment.ParseColumn(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, core.ErrUnknownColumn)
		}
		if rep.Columns.IsVisible(key) {
			rep.Columns.Toggle(key)
		}
	}
	if f.typesSet {
		rep.Types.SetActive(f.types)
	}
	for _, t := range f.toggle {
		rep.Types.Toggle(t)
	}
	if f.toggleAll {
		rep.Types.ToggleAll()
	}
	return nil
}

func runReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	var state reportFlags
	state.register(fs)
	fs.Parse(os.Args[1:])
	id := requireID(fs.Args(), "eqview report [flags] <id>")

	cfg := loadConfig()
	ds, err := newClient(cfg).Dataset(context.Background(), id)
	if err != nil {
		fatalf("load %d: %w", id, err)
	}

	rep := view.NewReport(ds)
	if err := state.apply(rep); err != nil {
		fatalf("%w", err)
	}
	fmt.Println(renderReport(rep.Table()))
}
