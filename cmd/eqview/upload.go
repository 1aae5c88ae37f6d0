package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func runUpload() {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: eqview upload <file.csv>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fatalf("%w", err)
	}
	defer f.Close()

	cfg := loadConfig()
	ds, err := newClient(cfg).Upload(context.Background(), filepath.Base(path), f)
	if err != nil {
		fatalf("upload %s: %w", path, err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Stored as %d", ds.FileID)))
	fmt.Println(renderSummary(ds))
}
