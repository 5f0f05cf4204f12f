// Package web serves the flashcard and study API over HTTP as JSON.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/kits"
	"github.com/conorfennell/versekeep/internal/study"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	store  *cardstore.Store
	kits   *kits.Catalog
	study  *study.Service
	router chi.Router
	logger *slog.Logger
}

// NewServer creates and configures a new server.
func NewServer(store *cardstore.Store, catalog *kits.Catalog, studySvc *study.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:  store,
		kits:   catalog,
		study:  studySvc,
		router: chi.NewRouter(),
		logger: logger.With("component", "web"),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		// Flashcards
		r.Get("/cards", s.handleListCards)
		r.Post("/cards", s.handleAddCards)
		r.Get("/cards/due", s.handleDueCards)
		r.Delete("/cards/{id}", s.handleDeleteCard)
		r.Post("/cards/{id}/review", s.handleReview)

		// Starter kits and progress
		r.Get("/kits", s.handleListKits)
		r.Post("/kits/{id}", s.handleAddKit)
		r.Get("/progress", s.handleProgress)
		r.Get("/badges", s.handleBadges)

		// Study annotations
		r.Get("/bookmarks", s.handleListBookmarks)
		r.Post("/bookmarks", s.handleAddBookmark)
		r.Delete("/bookmarks/{id}", s.handleDeleteBookmark)

		r.Get("/highlights", s.handleListHighlights)
		r.Get("/highlights/{book}/{chapter}/{verse}", s.handleGetHighlight)
		r.Put("/highlights/{book}/{chapter}/{verse}", s.handlePutHighlight)
		r.Delete("/highlights/{book}/{chapter}/{verse}", s.handleDeleteHighlight)

		r.Get("/notes", s.handleListNotes)
		r.Get("/notes/{book}/{chapter}/{verse}", s.handleGetNote)
		r.Put("/notes/{book}/{chapter}/{verse}", s.handlePutNote)
		r.Delete("/notes/{book}/{chapter}/{verse}", s.handleDeleteNote)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("Failed to write health check response", "error", err)
		}
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
