package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/equipview/internal/client"
	"github.com/JonMunkholm/equipview/internal/config"
	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/kv"
	"github.com/JonMunkholm/equipview/internal/logging"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/joho/godotenv"
)

// favoritesFile holds the local favorites store inside the data directory.
const favoritesFile = "favorites.db"

// loadConfig reads .env and the client environment, and sets up logging on
// stderr so command output stays clean.
func loadConfig() *config.ClientConfig {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fatalf("%v", err)
	}
	logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return cfg
}

func newClient(cfg *config.ClientConfig) *client.Client {
	return client.New(cfg.ServerURL, cfg.APIKey, cfg.Timeout)
}

// openFavorites opens the sqlite favorites store, creating the data
// directory if needed.
func openFavorites(ctx context.Context, cfg *config.ClientConfig) (*view.Favorites, func()) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fatalf("create data directory: %v", err)
	}
	store, err := kv.OpenSQLite(filepath.Join(cfg.DataDir, favoritesFile))
	if err != nil {
		fatalf("open favorites: %v", err)
	}
	return view.LoadFavorites(ctx, store), func() { store.Close() }
}

// fatalf prints a user-facing error and exits. Server errors already carry
// a message and code; anything else is mapped locally.
func fatalf(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, "error:", apiErr.Error())
		if apiErr.Action != "" {
			fmt.Fprintln(os.Stderr, "  "+apiErr.Action)
		}
	} else if core.IsUserFacing(err) {
		fmt.Fprintln(os.Stderr, "error:", core.FormatUserError(err))
		if ue := core.NewUserError(err); ue.User.Action != "" {
			fmt.Fprintln(os.Stderr, "  "+ue.User.Action)
		}
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

// parseID parses a history id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%q: %w", s, core.ErrInvalidID)
	}
	return id, nil
}

// requireID parses the single positional id argument or exits with usage.
func requireID(args []string, usage string) int64 {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage:", usage)
		os.Exit(1)
	}
	id, err := parseID(args[0])
	if err != nil {
		fatalf("%w", err)
	}
	return id
}

// optFloat is a flag that distinguishes "not given" from zero.
type optFloat struct {
	v *float64
}

func (o *optFloat) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.FormatFloat(*o.v, 'f', -1, 64)
}

func (o *optFloat) Set(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%q: %w", s, core.ErrInvalidFilter)
	}
	o.v = &f
	return nil
}

// listFlag collects a repeatable, comma-separated string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}
