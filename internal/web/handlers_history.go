package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/equipview/internal/chart"
	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/JonMunkholm/equipview/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleHistory lists uploads newest first; ?favorites=1 keeps starred ones.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.favorites.FilterHistory(items, truthy(r.URL.Query().Get("favorites"))))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, datasetFrom(r.Context()))
}

// handleView returns the filtered projection of a dataset.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseFilterConfig(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(datasetFrom(r.Context()), cfg))
}

// handleReport returns the sample-records table for the requested column
// and type state. HTMX requests get the table fragment.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep := view.NewReport(datasetFrom(r.Context()))
	if err := applyReportQuery(rep, r.URL.Query()); err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.ReportTable(rep.Table()).Render(r.Context(), w)
		return
	}
	writeJSON(w, http.StatusOK, rep.Table())
}

// handleChart renders ?metric= as a PNG: a metric column of the filtered
// projection, the averages, or the type distribution. Nothing to plot is
// 204 No Content.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ds := datasetFrom(r.Context())
	q := r.URL.Query()

	var (
		img []byte
		err error
	)
	switch metric := strings.ToLower(q.Get("metric")); metric {
	case "", "averages":
		img, err = chart.Averages(ds.Averages)
	case "types":
		img, err = chart.TypeDistribution(ds.TypeDistribution)
	default:
		key, _ := equipment.ParseColumn(metric)
		if _, ok := (equipment.Record{}).Metric(key); !ok {
			s.fail(w, r, fmt.Errorf("metric %q: %w", metric, core.ErrUnknownColumn))
			return
		}
		cfg, perr := parseFilterConfig(q)
		if perr != nil {
			s.fail(w, r, perr)
			return
		}
		img, err = chart.Metric(view.Build(ds, cfg), key)
	}

	if errors.Is(err, chart.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img)
}

type favoritesResponse struct {
	IDs []int64 `json:"ids"`
	// Count is how many of the ids are still in the history.
	Count int `json:"count"`
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResponse{
		IDs:   s.favorites.IDs(),
		Count: s.favorites.Count(items),
	})
}

type toggleResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
}

// handleToggleFavorite flips one history id. A failed save is reported even
// though the toggle stays in effect for this process.
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	fav, err := s.favorites.Toggle(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Favorite: fav})
}
