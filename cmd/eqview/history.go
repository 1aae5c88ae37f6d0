package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	onlyFavorites := fs.Bool("favorites", false, "Show starred uploads only")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	ctx := context.Background()

	items, err := newClient(cfg).History(ctx)
	if err != nil {
		fatalf("history: %w", err)
	}

	favs, closeFavs := openFavorites(ctx, cfg)
	defer closeFavs()

	fmt.Println(renderHistory(favs.FilterHistory(items, *onlyFavorites), favs, favs.Count(items)))
}

func runFav() {
	fs := flag.NewFlagSet("fav", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	id := requireID(fs.Args(), "eqview fav <id>")

	cfg := loadConfig()
	ctx := context.Background()

	favs, closeFavs := openFavorites(ctx, cfg)
	defer closeFavs()

	starred, err := favs.Toggle(ctx, id)
	state := "unstarred"
	if starred {
		state = "starred"
	}
	if err != nil {
		// The toggle still applies to this run, but it was not saved.
		fmt.Fprintf(os.Stderr, "warning: %d %s but not saved: %v\n", id, state, err)
		os.Exit(1)
	}
	fmt.Printf("%d %s\n", id, state)
}
