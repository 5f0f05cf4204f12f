package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/study"
	"github.com/conorfennell/versekeep/internal/validate"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, status, errorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// handleError maps err to a status. Validation failures are the caller's
// fault; anything else is logged and hidden.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalid), errors.Is(err, cardstore.ErrInvalidRating):
		respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

// persisted reports whether a mutation's changes were saved. A save failure
// keeps the change, so it is reported in the body instead of as an error.
// Any other error is returned.
func persisted(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, cardstore.ErrNotPersisted) {
		return false, nil
	}
	return false, err
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %w", validate.ErrInvalid, err)
	}
	return nil
}

// verseParam reads the {book}/{chapter}/{verse} path segments.
func verseParam(r *http.Request) (study.Verse, error) {
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		return study.Verse{}, fmt.Errorf("%w: chapter must be a number", validate.ErrInvalid)
	}
	verse, err := strconv.Atoi(chi.URLParam(r, "verse"))
	if err != nil {
		return study.Verse{}, fmt.Errorf("%w: verse must be a number", validate.ErrInvalid)
	}
	return study.Verse{
		BookID:  strings.ToUpper(chi.URLParam(r, "book")),
		Chapter: chapter,
		Verse:   verse,
	}, nil
}
