package web

// handlers_common.go parses view state from query parameters.
//
// Every request builds fresh view state from its query string, so the URL
// is the whole state of a page:
//
//	search, type                          filter by name and equipment type
//	flowrate_min ... temperature_max      inclusive metric bounds
//	hide=col                              hidden report columns (repeatable or comma-separated)
//	types=T                               active report types (repeatable; a lone empty value selects none)
//	toggle=T, toggle_all=1                applied after types

import (
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
)

// parseID parses a positive history id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%q: %w", s, core.ErrInvalidID)
	}
	return id, nil
}

// parseFilterConfig reads the filter parameters. Absent or blank bounds are
// unset; anything else must be a finite number.
func parseFilterConfig(q url.Values) (view.FilterConfig, error) {
	cfg := view.DefaultFilterConfig()
	cfg.SearchText = strings.TrimSpace(q.Get("search"))
	if t := q.Get("type"); t != "" {
		cfg.SelectedType = t
	}

	bounds := []struct {
		name string
		r    *view.Range
	}{
		{"flowrate", &cfg.Ranges.Flowrate},
		{"pressure", &cfg.Ranges.Pressure},
		{"temperature", &cfg.Ranges.Temperature},
	}
	for _, b := range bounds {
		var err error
		if b.r.Min, err = parseBound(q, b.name+"_min"); err != nil {
			return cfg, err
		}
		if b.r.Max, err = parseBound(q, b.name+"_max"); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func parseBound(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s=%q: %w", key, raw, core.ErrInvalidFilter)
	}
	return &f, nil
}

// parseColumns resolves hide parameters. Each column appears once in the
// result regardless of how often it was named.
func parseColumns(values []string) ([]equipment.ColumnKey, error) {
	seen := make(map[equipment.ColumnKey]bool)
	var keys []equipment.ColumnKey
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			k, ok := equipment.ParseColumn(name)
			if !ok {
				return nil, fmt.Errorf("%q: %w", name, core.ErrUnknownColumn)
			}
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}

// applyReportQuery replays the query's column and type state onto a fresh
// report.
func applyReportQuery(rep *view.Report, q url.Values) error {
	hidden, err := parseColumns(q["hide"])
	if err != nil {
		return err
	}
	for _, k := range hidden {
		rep.Columns.Toggle(k)
	}

	if types, ok := q["types"]; ok {
		rep.Types.SetActive(types)
	}
	for _, t := range q["toggle"] {
		rep.Types.Toggle(t)
	}
	if truthy(q.Get("toggle_all")) {
		rep.Types.ToggleAll()
	}
	return nil
}

// reportQuery encodes report state so that applyReportQuery reproduces it.
func reportQuery(hidden []equipment.ColumnKey, active, all []string) url.Values {
	q := url.Values{}
	for _, k := range hidden {
		q.Add("hide", columnParam(k))
	}
	switch {
	case len(active) == len(all):
	case len(active) == 0:
		q.Set("types", "")
	default:
		q["types"] = append([]string(nil), active...)
	}
	return q
}

func columnParam(k equipment.ColumnKey) string {
	if k == equipment.ColumnName {
		return "name"
	}
	return strings.ToLower(k.Label())
}

func truthy(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// formFile opens a multipart file field. A missing field is core.ErrNoFile.
func formFile(r *http.Request, field string) (multipart.File, string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", field, core.ErrNoFile)
	}
	return f, hdr.Filename, nil
}
