package schedule

import (
	"errors"
	"time"

	"github.com/conorfennell/versekeep/internal/domain"
)

// ErrInvalidRating is returned for a rating outside again/good/easy.
var ErrInvalidRating = errors.New("invalid review rating")

const day = 24 * time.Hour

// Params holds the fixed offset applied for each rating.
// The next review depends only on the rating just given, never on history.
type Params struct {
	Again time.Duration
	Good  time.Duration
	Easy  time.Duration
}

// DefaultParams returns the offsets used by the app: one minute, one day and
// three days.
func DefaultParams() *Params {
	return &Params{
		Again: time.Minute,
		Good:  day,
		Easy:  3 * day,
	}
}

// Offset returns the delay until the next review for the rating.
func (p *Params) Offset(rating domain.Rating) (time.Duration, error) {
	switch rating {
	case domain.RatingAgain:
		return p.Again, nil
	case domain.RatingGood:
		return p.Good, nil
	case domain.RatingEasy:
		return p.Easy, nil
	default:
		return 0, ErrInvalidRating
	}
}

// Next computes the review state of a card rated at now.
func (p *Params) Next(rating domain.Rating, now time.Time) (domain.ReviewState, error) {
	offset, err := p.Offset(rating)
	if err != nil {
		return domain.ReviewState{}, err
	}
	return domain.ReviewState{
		NextReviewAt:   now.Add(offset),
		IntervalDays:   IntervalDays(offset),
		LastReviewedAt: now,
	}, nil
}

// IntervalDays is the whole number of days in the offset. Sub-day offsets
// report 0.
func IntervalDays(offset time.Duration) int {
	return int(offset / day)
}

// IsDue reports whether a card with the given state is due at now.
// A nil state means the card was never reviewed.
func IsDue(state *domain.ReviewState, now time.Time) bool {
	if state == nil {
		return true
	}
	return !state.NextReviewAt.After(now)
}
