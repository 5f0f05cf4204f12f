package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conorfennell/versekeep/internal/study"
)

type highlightRequest struct {
	Color string `json:"color"`
}

type noteRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.study.Bookmarks(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req study.BookmarkInput
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	b, err := s.study.AddBookmark(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	removed, err := s.study.RemoveBookmark(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, http.StatusNotFound, "bookmark not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := s.study.Highlights(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, highlights)
}

func (s *Server) handleGetHighlight(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	h, err := s.study.Highlight(r.Context(), v)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if h == nil {
		respondError(w, r, http.StatusNotFound, "highlight not found")
		return
	}
	respondJSON(w, http.StatusOK, h)
}

func (s *Server) handlePutHighlight(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req highlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	h, err := s.study.SetHighlight(r.Context(), v, req.Color)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHighlight(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	removed, err := s.study.RemoveHighlight(r.Context(), v)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, http.StatusNotFound, "highlight not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.study.Notes(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	n, err := s.study.Note(r.Context(), v)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if n == nil {
		respondError(w, r, http.StatusNotFound, "note not found")
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (s *Server) handlePutNote(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req noteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	n, err := s.study.SaveNote(r.Context(), v, req.Content)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	v, err := verseParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	removed, err := s.study.RemoveNote(r.Context(), v)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, http.StatusNotFound, "note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
