// Package web provides the HTTP server and handlers for equipview.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/equipview/internal/config"
	"github.com/JonMunkholm/equipview/internal/core"
	"github.com/JonMunkholm/equipview/internal/view"
	mw "github.com/JonMunkholm/equipview/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for uploads, history views and comparisons.
type Server struct {
	cfg       *config.Config
	service   *core.Service
	favorites *view.Favorites
	router    *chi.Mux
	server    *http.Server
}

// NewServer wires the router. favorites is shared by every request.
func NewServer(cfg *config.Config, service *core.Service, favorites *view.Favorites) *Server {
	s := &Server{
		cfg:       cfg,
		service:   service,
		favorites: favorites,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		s.router.Use(mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst).Handler)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleHistoryPage)
	s.router.Group(func(r chi.Router) {
		r.Use(mw.APIKeyAuth(s.cfg.Security))
		r.Post("/upload", s.handleUploadPage)
		r.Post("/favorites/{id}", s.handleToggleFavoritePage)
	})
	s.router.Get("/compare", s.handleComparePage)
	s.router.Route("/history/{id}", func(r chi.Router) {
		r.Use(s.datasetCtx)
		r.Get("/", s.handleReportPage)
		r.Get("/chart.png", s.handleChart)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(s.cfg.Security))

		r.Post("/upload", s.handleUpload)
		r.Get("/history", s.handleHistory)
		r.Route("/history/{id}", func(r chi.Router) {
			r.Use(s.datasetCtx)
			r.Get("/", s.handleDataset)
			r.Get("/view", s.handleView)
			r.Get("/report", s.handleReport)
			r.Get("/chart.png", s.handleChart)
		})

		r.Post("/compare", s.handleCompareFiles)
		r.Get("/compare", s.handleCompareStored)

		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites/{id}", s.handleToggleFavorite)
	})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.LimiterStatus(),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v with the given status. Encoding errors can only be
// logged since the header is already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
