package domain

import (
	"fmt"
	"strings"
	"time"
)

// CardSpec describes a scripture passage before it becomes a card.
// Starter kits and bulk imports are expressed as CardSpecs.
type CardSpec struct {
	BookID         string `json:"bookId" yaml:"bookId" validate:"required,bookid"`
	Chapter        int    `json:"chapter" yaml:"chapter" validate:"required,gte=1"`
	VerseStart     int    `json:"verseStart" yaml:"verseStart" validate:"required,gte=1"`
	VerseEnd       int    `json:"verseEnd" yaml:"verseEnd" validate:"required,gtefield=VerseStart"`
	ReferenceLabel string `json:"referenceLabel" yaml:"referenceLabel" validate:"required"`
	Text           string `json:"text" yaml:"text" validate:"required"`
}

// Card is a single memorizable passage. Cards are never edited after creation.
type Card struct {
	ID string `json:"id"`
	CardSpec
	CreatedAt time.Time `json:"createdAt"`
}

// VerseCount is the number of verses the card covers.
func (c CardSpec) VerseCount() int {
	return c.VerseEnd - c.VerseStart + 1
}

// ReviewState is the scheduling state of a card that has been reviewed at
// least once. A card without one is due immediately.
type ReviewState struct {
	NextReviewAt   time.Time `json:"nextReviewAt"`
	IntervalDays   int       `json:"intervalDays"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}

// Rating is the self-assessed recall quality of a review.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// IsValid reports whether r is one of the known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// ParseRating accepts a rating name in any case.
func ParseRating(input string) (Rating, error) {
	r := Rating(strings.ToLower(strings.TrimSpace(input)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid rating: %q", input)
	}
	return r, nil
}

// StarterKit is a curated bundle of verses that awards BadgeID on first import.
type StarterKit struct {
	ID      string     `json:"id" yaml:"id" validate:"required,printascii,excludesall=/"`
	Label   string     `json:"label" yaml:"label" validate:"required"`
	BadgeID BadgeID    `json:"badgeId" yaml:"badgeId" validate:"required,startswith=starter_"`
	Verses  []CardSpec `json:"verses" yaml:"verses" validate:"required,min=1,dive"`
}

// FlashcardData is the persisted aggregate: every card, the review state of
// each reviewed card, and the user's progress.
type FlashcardData struct {
	Cards          []Card                 `json:"cards"`
	ReviewByCardID map[string]ReviewState `json:"reviewByCardId"`
	Progress       UserProgress           `json:"progress"`
}

// NewFlashcardData returns an empty aggregate with every collection allocated.
func NewFlashcardData() FlashcardData {
	return FlashcardData{
		Cards:          []Card{},
		ReviewByCardID: map[string]ReviewState{},
		Progress:       NewUserProgress(),
	}
}

// TotalVerses sums the verse span of every card.
func TotalVerses(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.VerseCount()
	}
	return total
}
