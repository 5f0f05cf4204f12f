// Package progress derives points, streaks and badges from flashcard events.
//
// Every transition is a pure function of the previous UserProgress and one
// event. The input progress is never modified.
package progress

import (
	"time"

	"github.com/conorfennell/versekeep/internal/domain"
)

const (
	PointsAgain         = 5
	PointsGoodOrEasy    = 10
	StreakBonusPerDay   = 2
	dateLayout          = "2006-01-02"
	cardsMilestoneSmall = 10
	cardsMilestoneLarge = 50
	versesMilestone     = 100
)

var streakBadges = []struct {
	days  int
	badge domain.BadgeID
}{
	{3, domain.BadgeStreak3},
	{7, domain.BadgeStreak7},
	{30, domain.BadgeStreak30},
}

// Event is one of CardsAdded, KitImported or Reviewed.
type Event interface {
	event()
}

// CardsAdded is emitted after cards are appended. Cards is the whole
// collection after the append.
type CardsAdded struct {
	PreviousCount int
	Cards         []domain.Card
}

// KitImported is emitted after a starter kit was imported for the first time.
type KitImported struct {
	KitID   string
	BadgeID domain.BadgeID
}

// Reviewed is emitted for every review of an existing card.
type Reviewed struct {
	Rating domain.Rating
	At     time.Time
}

func (CardsAdded) event()  {}
func (KitImported) event() {}
func (Reviewed) event()    {}

// Outcome summarises what a transition changed.
type Outcome struct {
	PointsAdded int
	NewBadges   []domain.BadgeID
	StreakDelta int
}

// Engine applies events. The location decides where calendar days begin for
// streak tracking.
type Engine struct {
	loc *time.Location
}

// NewEngine returns an engine that uses loc for calendar days. A nil loc
// means time.Local.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{loc: loc}
}

// Location returns the zone used for calendar days.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Apply returns the progress after ev.
func (e *Engine) Apply(p domain.UserProgress, ev Event) (domain.UserProgress, Outcome) {
	next := p.Clone()
	var out Outcome

	switch ev := ev.(type) {
	case CardsAdded:
		if ev.PreviousCount == 0 && len(ev.Cards) > 0 {
			grant(&next, &out, domain.BadgeFirstCard)
		}
		if len(ev.Cards) >= cardsMilestoneSmall {
			grant(&next, &out, domain.BadgeCards10)
		}
		if len(ev.Cards) >= cardsMilestoneLarge {
			grant(&next, &out, domain.BadgeCards50)
		}
		if domain.TotalVerses(ev.Cards) >= versesMilestone {
			grant(&next, &out, domain.BadgeVerses100)
		}

	case KitImported:
		if !next.HasStarterKit(ev.KitID) {
			next.AddedStarterKits = append(next.AddedStarterKits, ev.KitID)
		}
		grant(&next, &out, ev.BadgeID)

	case Reviewed:
		out.PointsAdded = ReviewPoints(ev.Rating, p.CurrentStreak)
		next.TotalPoints += out.PointsAdded

		today := e.Day(ev.At)
		next.CurrentStreak = NextStreak(p.CurrentStreak, p.LastStudyDate, today, e.Day(e.previousDay(ev.At)))
		next.LastStudyDate = today
		out.StreakDelta = next.CurrentStreak - p.CurrentStreak

		grant(&next, &out, domain.BadgeFirstReview)
		for _, sb := range streakBadges {
			if next.CurrentStreak >= sb.days {
				grant(&next, &out, sb.badge)
			}
		}
	}

	return next, out
}

// ReviewPoints is the score for one review given the streak before it.
// "Again" never earns the streak bonus.
func ReviewPoints(rating domain.Rating, streakBefore int) int {
	if rating == domain.RatingAgain {
		return PointsAgain
	}
	return PointsGoodOrEasy + streakBefore*StreakBonusPerDay
}

// NextStreak is the streak after studying on today. Days are YYYY-MM-DD strings.
func NextStreak(current int, lastStudyDate, today, yesterday string) int {
	switch lastStudyDate {
	case today:
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

// Day formats the calendar day of t in the engine's location.
func (e *Engine) Day(t time.Time) string {
	return t.In(e.loc).Format(dateLayout)
}

func (e *Engine) previousDay(t time.Time) time.Time {
	y, m, d := t.In(e.loc).Date()
	// Noon avoids landing in a DST gap.
	return time.Date(y, m, d-1, 12, 0, 0, 0, e.loc)
}

func grant(p *domain.UserProgress, out *Outcome, id domain.BadgeID) {
	if id == "" || p.HasBadge(id) {
		return
	}
	p.Badges = append(p.Badges, id)
	out.NewBadges = append(out.NewBadges, id)
}
