// Package kv provides small persisted string key/value stores.
//
// The view engine keeps its favorites set under one fixed key; the CLI keeps
// it in a local SQLite file and the server keeps it in PostgreSQL.
package kv

import "context"

// Store is a string key/value store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
