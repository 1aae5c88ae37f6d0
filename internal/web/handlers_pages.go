package web

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/view"
	"github.com/JonMunkholm/equipview/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

func renderPage(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Layout(title, body).Render(r.Context(), w)
}

// handleHistoryPage lists uploads with favorite toggles and links to
// compare each upload with the one before it.
func (s *Server) handleHistoryPage(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	previous := make(map[int64]int64, len(items))
	for i := 0; i+1 < len(items); i++ {
		previous[items[i].ID] = items[i+1].ID
	}

	onlyFavorites := truthy(r.URL.Query().Get("favorites"))
	shown := s.favorites.FilterHistory(items, onlyFavorites)

	rows := make([]templates.HistoryRow, len(shown))
	for i, item := range shown {
		rows[i] = templates.HistoryRow{Item: item, Favorite: s.favorites.IsFavorite(item.ID)}
		if prev, ok := previous[item.ID]; ok {
			rows[i].CompareURL = "/compare?a=" + strconv.FormatInt(prev, 10) + "&b=" + strconv.FormatInt(item.ID, 10)
		}
	}

	renderPage(w, r, "Upload history", templates.HistoryList(rows, s.favorites.Count(items), onlyFavorites))
}

// handleUploadPage stores a file from the history page form and redirects
// to its report.
func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUploadForm(w, r, 1); err != nil {
		s.fail(w, r, err)
		return
	}
	file, name, err := formFile(r, "file")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer file.Close()

	ds, err := s.service.Upload(r.Context(), name, file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/history/"+strconv.FormatInt(ds.FileID, 10), http.StatusSeeOther)
}

func (s *Server) handleToggleFavoritePage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.favorites.Toggle(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	res, err := s.compareStored(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	renderPage(w, r, "Comparison", templates.Comparison(view.FormatComparison(res)))
}

// handleReportPage renders a dataset with its charts and the sample-records
// table. Every toggle is a link to the page with the toggled state.
func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	ds := datasetFrom(r.Context())
	rep := view.NewReport(ds)
	if err := applyReportQuery(rep, r.URL.Query()); err != nil {
		s.fail(w, r, err)
		return
	}
	table := rep.Table()

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.ReportTable(table).Render(r.Context(), w)
		return
	}

	base := "/history/" + strconv.FormatInt(ds.FileID, 10)
	link := func(hidden []equipment.ColumnKey, active []string) string {
		q := reportQuery(hidden, active, table.AllTypes)
		if len(q) == 0 {
			return base
		}
		return base + "?" + q.Encode()
	}

	var hidden []equipment.ColumnKey
	for _, c := range equipment.Columns {
		if !rep.Columns.IsVisible(c) {
			hidden = append(hidden, c)
		}
	}

	page := templates.ReportPage{
		Dataset: ds,
		Table:   table,
	}
	for _, c := range equipment.Columns {
		page.Columns = append(page.Columns, templates.Toggle{
			Label:  c.Label(),
			Active: rep.Columns.IsVisible(c),
			URL:    link(flip(hidden, c), table.ActiveTypes),
		})
	}
	for _, t := range table.AllTypes {
		page.Types = append(page.Types, templates.Toggle{
			Label:  t,
			Active: rep.Types.IsActive(t),
			URL:    link(hidden, flip(table.ActiveTypes, t)),
		})
	}
	nextAll := table.AllTypes
	if rep.Types.AllSelected() {
		nextAll = nil
	}
	page.ToggleAll = templates.Toggle{Label: table.ToggleAllLabel, Active: true, URL: link(hidden, nextAll)}

	for _, metric := range []string{"averages", "types", "flowrate", "pressure", "temperature"} {
		page.ChartURLs = append(page.ChartURLs, base+"/chart.png?metric="+metric)
	}

	renderPage(w, r, "Dataset "+strconv.FormatInt(ds.FileID, 10), templates.Report(page))
}

// flip returns a copy of set with v removed if present and added if not.
func flip[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
