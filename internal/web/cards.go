package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/progress"
	"github.com/conorfennell/versekeep/internal/validate"
)

type cardView struct {
	domain.Card
	Review *domain.ReviewState `json:"review,omitempty"`
}

type addCardsRequest struct {
	Cards []domain.CardSpec `json:"cards" validate:"required,min=1,dive"`
}

type reviewRequest struct {
	Rating domain.Rating `json:"rating" validate:"required,oneof=again good easy"`
}

// changeResponse reports a mutation. Applied is false for no-ops such as an
// already imported kit; Persisted is false when the change is only in memory.
type changeResponse struct {
	Applied     bool                `json:"applied"`
	Persisted   bool                `json:"persisted"`
	Cards       []domain.Card       `json:"cards,omitempty"`
	Review      *domain.ReviewState `json:"review,omitempty"`
	PointsAdded int                 `json:"pointsAdded"`
	StreakDelta int                 `json:"streakDelta"`
	NewBadges   []progress.Badge    `json:"newBadges"`
}

func newChangeResponse(ch cardstore.Change, saved bool) changeResponse {
	resp := changeResponse{
		Applied:     ch.Applied,
		Persisted:   saved,
		Cards:       ch.Cards,
		PointsAdded: ch.Outcome.PointsAdded,
		StreakDelta: ch.Outcome.StreakDelta,
		NewBadges:   []progress.Badge{},
	}
	for _, id := range ch.Outcome.NewBadges {
		b := progress.Describe(id)
		b.Earned = true
		resp.NewBadges = append(resp.NewBadges, b)
	}
	return resp
}

func (s *Server) views(cards []domain.Card) []cardView {
	out := make([]cardView, 0, len(cards))
	for _, c := range cards {
		v := cardView{Card: c}
		if st, ok := s.store.ReviewState(c.ID); ok {
			v.Review = &st
		}
		out = append(out, v)
	}
	return out
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.views(s.store.Cards()))
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.views(s.store.DueCards()))
}

func (s *Server) handleAddCards(w http.ResponseWriter, r *http.Request) {
	var req addCardsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.handleError(w, r, err)
		return
	}

	ch, err := s.store.AddCards(r.Context(), req.Cards)
	saved, err := persisted(err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newChangeResponse(ch, saved))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := s.store.DeleteCard(r.Context(), id)
	saved, err := persisted(err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("card %s not found", id))
		return
	}
	respondJSON(w, http.StatusOK, changeResponse{Applied: true, Persisted: saved, NewBadges: []progress.Badge{}})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.handleError(w, r, err)
		return
	}

	ch, err := s.store.RecordReview(r.Context(), id, req.Rating)
	saved, err := persisted(err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !ch.Applied {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("card %s not found", id))
		return
	}
	resp := newChangeResponse(ch, saved)
	resp.Review = &ch.Review
	respondJSON(w, http.StatusOK, resp)
}

type kitView struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	BadgeID    domain.BadgeID `json:"badgeId"`
	VerseCount int            `json:"verseCount"`
	Added      bool           `json:"added"`
}

func (s *Server) handleListKits(w http.ResponseWriter, r *http.Request) {
	p := s.store.Progress()
	all := s.kits.All()
	out := make([]kitView, 0, len(all))
	for _, k := range all {
		out = append(out, kitView{
			ID:         k.ID,
			Label:      k.Label,
			BadgeID:    k.BadgeID,
			VerseCount: len(k.Verses),
			Added:      p.HasStarterKit(k.ID),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddKit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.kits.Lookup(id); !ok {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("starter kit %s not found", id))
		return
	}

	ch, err := s.store.AddStarterKit(r.Context(), id)
	saved, err := persisted(err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	status := http.StatusOK
	if ch.Applied {
		status = http.StatusCreated
	}
	respondJSON(w, status, newChangeResponse(ch, saved))
}

type progressResponse struct {
	domain.UserProgress
	CardCount  int `json:"cardCount"`
	VerseCount int `json:"verseCount"`
	DueCount   int `json:"dueCount"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	cards := s.store.Cards()
	respondJSON(w, http.StatusOK, progressResponse{
		UserProgress: s.store.Progress(),
		CardCount:    len(cards),
		VerseCount:   domain.TotalVerses(cards),
		DueCount:     len(s.store.DueCards()),
	})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, progress.Catalog(s.store.Progress(), s.kits.All()))
}
