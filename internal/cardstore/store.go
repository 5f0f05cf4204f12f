// Package cardstore owns the flashcard aggregate: cards, their review states
// and the user's progress. Every mutation runs as one transaction under the
// store's mutex and is saved wholesale once it has been applied in memory.
package cardstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/progress"
	"github.com/conorfennell/versekeep/internal/schedule"
)

var (
	// ErrNotPersisted is returned when a mutation was applied in memory but
	// could not be saved. The in-memory state is kept.
	ErrNotPersisted = errors.New("changes were applied but not saved")

	// ErrInvalidRating is returned for a rating outside again/good/easy.
	ErrInvalidRating = schedule.ErrInvalidRating
)

// Store is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	data domain.FlashcardData

	clock     Clock
	ids       IDGenerator
	persister Persister
	kits      KitCatalog
	engine    *progress.Engine
	params    *schedule.Params
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }
func WithIDGenerator(g IDGenerator) Option { return func(s *Store) { s.ids = g } }
func WithPersister(p Persister) Option { return func(s *Store) { s.persister = p } }
func WithKits(k KitCatalog) Option { return func(s *Store) { s.kits = k } }
func WithEngine(e *progress.Engine) Option { return func(s *Store) { s.engine = e } }
func WithParams(p *schedule.Params) Option { return func(s *Store) { s.params = p } }
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// New returns a store over data. Without options it uses the wall clock,
// UUID ids, default scheduling, no kits and no persistence.
func New(data domain.FlashcardData, opts ...Option) *Store {
	s := &Store{
		data:      data,
		clock:     SystemClock,
		ids:       UUIDGenerator,
		persister: nopPersister{},
		kits:      emptyCatalog{},
		engine:    progress.NewEngine(nil),
		params:    schedule.DefaultParams(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "cardstore")
	if s.data.ReviewByCardID == nil {
		s.data.ReviewByCardID = map[string]domain.ReviewState{}
	}
	return s
}

// Change describes the effect of one mutation. Applied is false when the
// mutation was a no-op.
type Change struct {
	Applied bool
	Cards   []domain.Card
	Review  domain.ReviewState
	Outcome progress.Outcome
}

// AddCards appends one card per spec. All cards of one call share the same
// creation time. An empty list is a no-op.
func (s *Store) AddCards(ctx context.Context, specs []domain.CardSpec) (Change, error) {
	if len(specs) == 0 {
		return Change{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.addCards(specs)
	s.logger.Info("Added cards", "count", len(ch.Cards), "total", len(s.data.Cards))
	return ch, s.persist(ctx)
}

func (s *Store) addCards(specs []domain.CardSpec) Change {
	now := s.clock.Now()
	prev := len(s.data.Cards)

	added := make([]domain.Card, 0, len(specs))
	for _, spec := range specs {
		added = append(added, domain.Card{
			ID:        s.ids.NewID(),
			CardSpec:  spec,
			CreatedAt: now,
		})
	}
	s.data.Cards = append(s.data.Cards, added...)

	next, out := s.engine.Apply(s.data.Progress, progress.CardsAdded{
		PreviousCount: prev,
		Cards:         s.data.Cards,
	})
	s.data.Progress = next
	return Change{Applied: true, Cards: added, Outcome: out}
}

// AddStarterKit imports a kit's verses as cards and grants its badge. Unknown
// kits and kits already imported are no-ops.
func (s *Store) AddStarterKit(ctx context.Context, kitID string) (Change, error) {
	kit, ok := s.kits.Lookup(kitID)
	if !ok {
		s.logger.Debug("Ignoring unknown starter kit", "kit", kitID)
		return Change{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Progress.HasStarterKit(kit.ID) {
		return Change{}, nil
	}

	ch := Change{Applied: true}
	if len(kit.Verses) > 0 {
		ch = s.addCards(kit.Verses)
	}
	next, out := s.engine.Apply(s.data.Progress, progress.KitImported{KitID: kit.ID, BadgeID: kit.BadgeID})
	s.data.Progress = next
	ch.Outcome.NewBadges = append(ch.Outcome.NewBadges, out.NewBadges...)

	s.logger.Info("Imported starter kit", "kit", kit.ID, "cards", len(ch.Cards))
	return ch, s.persist(ctx)
}

// DeleteCard removes a card and its review state. Progress is untouched.
func (s *Store) DeleteCard(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.data.Cards, func(c domain.Card) bool { return c.ID == id })
	if i < 0 {
		return false, nil
	}
	s.data.Cards = slices.Delete(s.data.Cards, i, i+1)
	delete(s.data.ReviewByCardID, id)

	s.logger.Info("Deleted card", "card", id)
	return true, s.persist(ctx)
}

// RecordReview schedules the card's next review and updates points, streak
// and badges in one step. Unknown cards are a no-op.
func (s *Store) RecordReview(ctx context.Context, cardID string, rating domain.Rating) (Change, error) {
	if !rating.IsValid() {
		return Change{}, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.data.Cards, func(c domain.Card) bool { return c.ID == cardID })
	if i < 0 {
		return Change{}, nil
	}

	now := s.clock.Now()
	state, err := s.params.Next(rating, now)
	if err != nil {
		return Change{}, err
	}
	next, out := s.engine.Apply(s.data.Progress, progress.Reviewed{Rating: rating, At: now})

	s.data.ReviewByCardID[cardID] = state
	s.data.Progress = next

	s.logger.Info("Recorded review",
		"card", cardID,
		"rating", rating,
		"next_review_at", state.NextReviewAt,
		"points", out.PointsAdded,
		"streak", next.CurrentStreak,
	)
	return Change{
		Applied: true,
		Cards:   []domain.Card{s.data.Cards[i]},
		Review:  state,
		Outcome: out,
	}, s.persist(ctx)
}

// DueCards returns the cards due now, soonest first. Cards that were never
// reviewed sort before all others and keep insertion order among themselves.
func (s *Store) DueCards() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	epoch := time.UnixMilli(0)
	type due struct {
		card domain.Card
		at   time.Time
	}
	var list []due
	for _, c := range s.data.Cards {
		state, ok := s.data.ReviewByCardID[c.ID]
		if !ok {
			list = append(list, due{c, epoch})
			continue
		}
		if schedule.IsDue(&state, now) {
			list = append(list, due{c, state.NextReviewAt})
		}
	}
	slices.SortStableFunc(list, func(a, b due) int {
		return cmp.Compare(a.at.UnixMilli(), b.at.UnixMilli())
	})

	cards := make([]domain.Card, len(list))
	for i, d := range list {
		cards[i] = d.card
	}
	return cards
}

// Cards returns every card in insertion order.
func (s *Store) Cards() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Cards)
}

// Card returns a card by id.
func (s *Store) Card(id string) (domain.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Cards, func(c domain.Card) bool { return c.ID == id })
	if i < 0 {
		return domain.Card{}, false
	}
	return s.data.Cards[i], true
}

// ReviewState returns the review state of a card that has been reviewed.
func (s *Store) ReviewState(id string) (domain.ReviewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.data.ReviewByCardID[id]
	return state, ok
}

// Progress returns a copy of the user's progress.
func (s *Store) Progress() domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Progress.Clone()
}

// Location is the zone that decides calendar days for streaks.
func (s *Store) Location() *time.Location {
	return s.engine.Location()
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Store) Snapshot() domain.FlashcardData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() domain.FlashcardData {
	return domain.FlashcardData{
		Cards:          slices.Clone(s.data.Cards),
		ReviewByCardID: maps.Clone(s.data.ReviewByCardID),
		Progress:       s.data.Progress.Clone(),
	}
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.snapshot()); err != nil {
		s.logger.Warn("Failed to save flashcards, keeping changes in memory", "error", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}
