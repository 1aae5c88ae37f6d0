package view

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/logging"
)

// FavoritesKey is the storage key holding the favorite history ids.
const FavoritesKey = "historyFavorites"

// KV is the persisted string store favorites are written to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Favorites is the set of history ids a user has starred.
//
// Every mutation updates the in-memory set first and then writes the whole
// set back under the same lock, so a reader never sees a partial update.
type Favorites struct {
	store KV

	mu  sync.RWMutex
	ids map[int64]struct{}
}

// LoadFavorites reads the persisted set. Missing, unreadable or malformed
// storage yields an empty set; the failure is logged, never returned.
func LoadFavorites(ctx context.Context, store KV) *Favorites {
	f := &Favorites{store: store, ids: make(map[int64]struct{})}

	raw, ok, err := store.Get(ctx, FavoritesKey)
	if err != nil {
		logging.FromContext(ctx).Warn("favorites unreadable, starting empty", "error", err)
		return f
	}
	if !ok {
		return f
	}

	for _, id := range DecodeFavorites(raw) {
		f.ids[id] = struct{}{}
	}
	return f
}

// Toggle flips membership of id, persists the set, and returns the new
// membership. On a write failure the in-memory toggle is kept and the error
// is returned.
func (f *Favorites) Toggle(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, was := f.ids[id]
	if was {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}

	if err := f.store.Set(ctx, FavoritesKey, EncodeFavorites(f.sortedLocked())); err != nil {
		return !was, fmt.Errorf("save favorites: %w", err)
	}
	return !was, nil
}

// IsFavorite reports whether id is starred.
func (f *Favorites) IsFavorite(id int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[id]
	return ok
}

// IDs returns the starred ids in ascending order.
func (f *Favorites) IDs() []int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedLocked()
}

// FilterHistory returns items unchanged unless onlyFavorites is set, in
// which case only starred items are kept. The set itself is not modified.
func (f *Favorites) FilterHistory(items []equipment.HistoryItem, onlyFavorites bool) []equipment.HistoryItem {
	if !onlyFavorites {
		return items
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]equipment.HistoryItem, 0, len(items))
	for _, item := range items {
		if _, ok := f.ids[item.ID]; ok {
			result = append(result, item)
		}
	}
	return result
}

// Count returns how many of items are starred. Ids absent from items are
// retained in the set but not counted.
func (f *Favorites) Count(items []equipment.HistoryItem) int {
	return len(f.FilterHistory(items, true))
}

func (f *Favorites) sortedLocked() []int64 {
	ids := make([]int64, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EncodeFavorites serializes ids as a JSON array of integers.
func EncodeFavorites(ids []int64) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// DecodeFavorites parses a stored JSON array of ids. Input that is not an
// array decodes to nil; entries that are not integers (numeric strings are
// accepted) are dropped individually. Duplicates collapse.
func DecodeFavorites(raw string) []int64 {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	seen := make(map[int64]bool, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		id, ok := decodeID(e)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func decodeID(e json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(e, &n); err == nil {
		if id, err := n.Int64(); err == nil {
			return id, true
		}
		// 3.0 is an integer written as a float
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), true
		}
		return 0, false
	}

	var s string
	if err := json.Unmarshal(e, &s); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}
