package progress

import (
	"strings"

	"github.com/conorfennell/versekeep/internal/domain"
)

// Badge describes an achievement for display.
type Badge struct {
	ID     domain.BadgeID `json:"id"`
	Label  string         `json:"label"`
	Kind   string         `json:"kind"`
	Earned bool           `json:"earned"`
}

const (
	KindMilestone = "milestone"
	KindStreak    = "streak"
	KindStarter   = "starter"
)

var milestones = []Badge{
	{ID: domain.BadgeFirstCard, Label: "First card", Kind: KindMilestone},
	{ID: domain.BadgeFirstReview, Label: "First review", Kind: KindMilestone},
	{ID: domain.BadgeStreak3, Label: "3-day streak", Kind: KindStreak},
	{ID: domain.BadgeStreak7, Label: "7-day streak", Kind: KindStreak},
	{ID: domain.BadgeStreak30, Label: "30-day streak", Kind: KindStreak},
	{ID: domain.BadgeCards10, Label: "10 cards", Kind: KindMilestone},
	{ID: domain.BadgeCards50, Label: "50 cards", Kind: KindMilestone},
	{ID: domain.BadgeVerses100, Label: "100 verses", Kind: KindMilestone},
}

// Catalog lists every milestone badge followed by one badge per starter kit,
// each marked with whether p has earned it.
func Catalog(p domain.UserProgress, kits []domain.StarterKit) []Badge {
	out := make([]Badge, 0, len(milestones)+len(kits))
	for _, b := range milestones {
		b.Earned = p.HasBadge(b.ID)
		out = append(out, b)
	}
	for _, k := range kits {
		out = append(out, Badge{
			ID:     k.BadgeID,
			Label:  "Starter: " + k.Label,
			Kind:   KindStarter,
			Earned: p.HasBadge(k.BadgeID),
		})
	}
	return out
}

// Describe returns the display form of a single badge id. Unknown starter
// badges fall back to a label derived from the id.
func Describe(id domain.BadgeID) Badge {
	for _, b := range milestones {
		if b.ID == id {
			return b
		}
	}
	if name, ok := strings.CutPrefix(string(id), domain.StarterBadgePrefix); ok {
		return Badge{ID: id, Label: "Starter: " + strings.ReplaceAll(name, "_", " "), Kind: KindStarter}
	}
	return Badge{ID: id, Label: string(id), Kind: KindMilestone}
}
