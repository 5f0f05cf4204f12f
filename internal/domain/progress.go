package domain

import "slices"

// BadgeID identifies a one-way achievement.
type BadgeID string

const (
	BadgeFirstCard   BadgeID = "first_card"
	BadgeFirstReview BadgeID = "first_review"
	BadgeStreak3     BadgeID = "streak_3"
	BadgeStreak7     BadgeID = "streak_7"
	BadgeStreak30    BadgeID = "streak_30"
	BadgeCards10     BadgeID = "cards_10"
	BadgeCards50     BadgeID = "cards_50"
	BadgeVerses100   BadgeID = "verses_100"
)

// StarterBadgePrefix prefixes every badge granted by a starter kit import.
const StarterBadgePrefix = "starter_"

// UserProgress is the gamification state of the installation.
// Badges and AddedStarterKits behave as sets and only ever grow.
type UserProgress struct {
	TotalPoints      int       `json:"totalPoints"`
	LastStudyDate    string    `json:"lastStudyDate"`
	CurrentStreak    int       `json:"currentStreak"`
	Badges           []BadgeID `json:"badges"`
	AddedStarterKits []string  `json:"addedStarterKits"`
}

// NewUserProgress returns the progress of a fresh installation.
func NewUserProgress() UserProgress {
	return UserProgress{
		Badges:           []BadgeID{},
		AddedStarterKits: []string{},
	}
}

// HasBadge reports whether id has been earned.
func (p UserProgress) HasBadge(id BadgeID) bool {
	return slices.Contains(p.Badges, id)
}

// HasStarterKit reports whether the kit has already been imported.
func (p UserProgress) HasStarterKit(kitID string) bool {
	return slices.Contains(p.AddedStarterKits, kitID)
}

// Clone returns a copy that shares no slices with p.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.Badges = append(make([]BadgeID, 0, len(p.Badges)), p.Badges...)
	out.AddedStarterKits = append(make([]string, 0, len(p.AddedStarterKits)), p.AddedStarterKits...)
	return out
}
