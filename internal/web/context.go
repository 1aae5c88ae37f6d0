package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/go-chi/chi/v5"
)

type ctxKey int

const datasetKey ctxKey = iota

// datasetCtx loads the history item named by the {id} URL parameter and
// stores its dataset in the request context.
func (s *Server) datasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		ds, err := s.service.Analysis(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), datasetKey, ds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// datasetFrom returns the dataset stored by datasetCtx.
func datasetFrom(ctx context.Context) equipment.Dataset {
	ds, _ := ctx.Value(datasetKey).(equipment.Dataset)
	return ds
}
