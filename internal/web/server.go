package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/config"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/narrative"
)

// Server hosts the upload UI and the JSON cleaning API. Runs live in
// memory only.
type Server struct {
	cfg   *config.Global
	gen   narrative.Generator
	store *runStore
	mux   *chi.Mux
}

// New builds the server and its routes from the loaded configuration.
func New(cfg *config.Global) *Server {
	s := &Server{
		cfg:   cfg,
		gen:   cfg.Generator(),
		store: newRunStore(),
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Get("/", s.handleRun)
		r.Get("/cleaned.csv", s.handleCleanedCSV)
		r.Get("/cleaned.xlsx", s.handleCleanedXLSX)
		r.Get("/report.json", s.handleReportJSON)
		r.Get("/report.html", s.handleReportHTML)
	})
	r.Post("/api/clean", s.handleAPIClean)

	s.mux = r
	return s
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.mux }

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("web ui listening", "addr", s.cfg.ListenAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
