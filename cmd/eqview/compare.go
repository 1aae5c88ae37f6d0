package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
)

func runCompare() {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	stored := fs.Bool("stored", false, "Arguments are history ids instead of files")
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: eqview compare <a.csv> <b.csv>\n       eqview compare -stored <id-a> <id-b>")
		os.Exit(1)
	}

	cfg := loadConfig()
	c := newClient(cfg)
	ctx := context.Background()

	var (
		res equipment.ComparisonResult
		err error
	)
	if *stored {
		idA, errA := parseID(args[0])
		idB, errB := parseID(args[1])
		if errA != nil || errB != nil {
			fatalf("compare: %w", firstErr(errA, errB))
		}
		res, err = c.CompareStored(ctx, idA, idB)
	} else {
		fa, ferr := os.Open(args[0])
		if ferr != nil {
			fatalf("%w", ferr)
		}
		defer fa.Close()
		fb, ferr := os.Open(args[1])
		if ferr != nil {
			fatalf("%w", ferr)
		}
		defer fb.Close()
		res, err = c.CompareFiles(ctx, filepath.Base(args[0]), fa, filepath.Base(args[1]), fb)
	}
	if err != nil {
		fatalf("compare: %w", err)
	}

	fmt.Println(renderComparison(view.FormatComparison(res)))
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
