// Package record converts the flashcard aggregate to and from its persisted
// JSON form.
//
// Records are upgraded in three steps: raw bytes are read field by field into
// a partial record, the partial record is upgraded from its schema version,
// and every field still missing gets its stated default. Decoding never fails;
// whatever could not be read is reported instead.
package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/conorfennell/versekeep/internal/domain"
)

// Key is the storage key the aggregate is saved under.
const Key = "bible-study-app-flashcards-v1"

// CurrentVersion is written by Encode. Records without a version field are
// version 0 and predate addedStarterKits.
const CurrentVersion = 1

// Report describes how a decoded record differed from a clean, current one.
type Report struct {
	Version   int
	Defaulted []string
	Dropped   int
	Corrupt   bool
}

// Clean reports whether the record decoded without any repair.
func (r Report) Clean() bool {
	return !r.Corrupt && len(r.Defaulted) == 0 && r.Dropped == 0
}

func (r *Report) defaulted(field string) {
	r.Defaulted = append(r.Defaulted, field)
}

type cardJSON struct {
	ID             string `json:"id"`
	BookID         string `json:"bookId"`
	Chapter        int    `json:"chapter"`
	VerseStart     int    `json:"verseStart"`
	VerseEnd       int    `json:"verseEnd"`
	ReferenceLabel string `json:"referenceLabel"`
	Text           string `json:"text"`
	CreatedAt      int64  `json:"createdAt"`
}

type reviewJSON struct {
	NextReviewAt   int64 `json:"nextReviewAt"`
	IntervalDays   int   `json:"intervalDays"`
	LastReviewedAt int64 `json:"lastReviewedAt"`
}

type progressJSON struct {
	TotalPoints      int      `json:"totalPoints"`
	LastStudyDate    string   `json:"lastStudyDate"`
	CurrentStreak    int      `json:"currentStreak"`
	Badges           []string `json:"badges"`
	AddedStarterKits []string `json:"addedStarterKits"`
}

type recordJSON struct {
	Version        int                   `json:"version"`
	Cards          []cardJSON            `json:"cards"`
	ReviewByCardID map[string]reviewJSON `json:"reviewByCardId"`
	Progress       progressJSON          `json:"progress"`
}

// Encode serializes the aggregate with millisecond timestamps.
func Encode(data domain.FlashcardData) ([]byte, error) {
	rec := recordJSON{
		Version:        CurrentVersion,
		Cards:          make([]cardJSON, 0, len(data.Cards)),
		ReviewByCardID: make(map[string]reviewJSON, len(data.ReviewByCardID)),
		Progress: progressJSON{
			TotalPoints:      data.Progress.TotalPoints,
			LastStudyDate:    data.Progress.LastStudyDate,
			CurrentStreak:    data.Progress.CurrentStreak,
			Badges:           make([]string, 0, len(data.Progress.Badges)),
			AddedStarterKits: append([]string{}, data.Progress.AddedStarterKits...),
		},
	}
	for _, c := range data.Cards {
		rec.Cards = append(rec.Cards, cardJSON{
			ID:             c.ID,
			BookID:         c.BookID,
			Chapter:        c.Chapter,
			VerseStart:     c.VerseStart,
			VerseEnd:       c.VerseEnd,
			ReferenceLabel: c.ReferenceLabel,
			Text:           c.Text,
			CreatedAt:      c.CreatedAt.UnixMilli(),
		})
	}
	for id, st := range data.ReviewByCardID {
		rec.ReviewByCardID[id] = reviewJSON{
			NextReviewAt:   st.NextReviewAt.UnixMilli(),
			IntervalDays:   st.IntervalDays,
			LastReviewedAt: st.LastReviewedAt.UnixMilli(),
		}
	}
	for _, b := range data.Progress.Badges {
		rec.Progress.Badges = append(rec.Progress.Badges, string(b))
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode flashcard record: %w", err)
	}
	return raw, nil
}

func millis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
