package record

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/conorfennell/versekeep/internal/domain"
)

// partial holds whatever could be read from a raw record. Nil means the field
// was absent or unreadable.
type partial struct {
	version  int
	cards    []domain.Card
	reviews  map[string]domain.ReviewState
	progress partialProgress
}

type partialProgress struct {
	totalPoints      *int
	lastStudyDate    *string
	currentStreak    *int
	badges           []domain.BadgeID
	addedStarterKits []string
}

// Decode rebuilds the aggregate from raw. Empty input yields a fresh
// aggregate. Decode never fails: unreadable parts are defaulted and listed in
// the report.
func Decode(raw []byte) (domain.FlashcardData, Report) {
	var rep Report
	if len(bytes.TrimSpace(raw)) == 0 {
		rep.Version = CurrentVersion
		return domain.NewFlashcardData(), rep
	}
	if !gjson.ValidBytes(raw) {
		rep.Corrupt = true
		return domain.NewFlashcardData(), rep
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		rep.Corrupt = true
		return domain.NewFlashcardData(), rep
	}

	p := read(root, &rep)
	upgrade(&p, &rep)
	return complete(p, &rep), rep
}

func read(root gjson.Result, rep *Report) partial {
	var p partial

	if v := root.Get("version"); v.Exists() {
		if n, ok := intValue(v); ok && n >= 0 {
			p.version = n
		} else {
			rep.defaulted("version")
		}
	}

	if v := root.Get("cards"); v.Exists() {
		if v.IsArray() {
			p.cards = readCards(v, rep)
		} else {
			rep.defaulted("cards")
		}
	}

	if v := root.Get("reviewByCardId"); v.Exists() {
		if v.IsObject() {
			p.reviews = readReviews(v, rep)
		} else {
			rep.defaulted("reviewByCardId")
		}
	}

	if v := root.Get("progress"); v.Exists() {
		if v.IsObject() {
			p.progress = readProgress(v, rep)
		} else {
			rep.defaulted("progress")
		}
	}
	return p
}

func readCards(arr gjson.Result, rep *Report) []domain.Card {
	cards := []domain.Card{}
	seen := map[string]bool{}
	for i, v := range arr.Array() {
		id := v.Get("id")
		if !v.IsObject() || id.Type != gjson.String || id.Str == "" || seen[id.Str] {
			rep.Dropped++
			continue
		}
		seen[id.Str] = true

		field := func(name string) string { return fmt.Sprintf("cards[%d].%s", i, name) }
		c := domain.Card{ID: id.Str}
		c.BookID = stringField(v, "bookId", field, rep)
		c.Chapter = intField(v, "chapter", field, rep)
		c.VerseStart = intField(v, "verseStart", field, rep)
		c.VerseEnd = intField(v, "verseEnd", field, rep)
		c.ReferenceLabel = stringField(v, "referenceLabel", field, rep)
		c.Text = stringField(v, "text", field, rep)
		c.CreatedAt = millis(int64Field(v, "createdAt", field, rep))
		cards = append(cards, c)
	}
	return cards
}

func readReviews(obj gjson.Result, rep *Report) map[string]domain.ReviewState {
	reviews := map[string]domain.ReviewState{}
	obj.ForEach(func(key, v gjson.Result) bool {
		next := v.Get("nextReviewAt")
		if key.Str == "" || !v.IsObject() || next.Type != gjson.Number {
			rep.Dropped++
			return true
		}
		field := func(name string) string { return fmt.Sprintf("reviewByCardId[%s].%s", key.Str, name) }
		reviews[key.Str] = domain.ReviewState{
			NextReviewAt:   millis(next.Int()),
			IntervalDays:   intField(v, "intervalDays", field, rep),
			LastReviewedAt: millis(int64Field(v, "lastReviewedAt", field, rep)),
		}
		return true
	})
	return reviews
}

func readProgress(obj gjson.Result, rep *Report) partialProgress {
	var pp partialProgress
	if v := obj.Get("totalPoints"); v.Exists() {
		if n, ok := intValue(v); ok {
			pp.totalPoints = &n
		} else {
			rep.defaulted("progress.totalPoints")
		}
	}
	if v := obj.Get("lastStudyDate"); v.Exists() {
		if v.Type == gjson.String {
			s := v.Str
			pp.lastStudyDate = &s
		} else {
			rep.defaulted("progress.lastStudyDate")
		}
	}
	if v := obj.Get("currentStreak"); v.Exists() {
		if n, ok := intValue(v); ok {
			pp.currentStreak = &n
		} else {
			rep.defaulted("progress.currentStreak")
		}
	}
	if v := obj.Get("badges"); v.Exists() {
		if v.IsArray() {
			pp.badges = []domain.BadgeID{}
			for _, b := range v.Array() {
				if b.Type == gjson.String && b.Str != "" {
					pp.badges = append(pp.badges, domain.BadgeID(b.Str))
				} else {
					rep.Dropped++
				}
			}
		} else {
			rep.defaulted("progress.badges")
		}
	}
	if v := obj.Get("addedStarterKits"); v.Exists() {
		if v.IsArray() {
			pp.addedStarterKits = []string{}
			for _, k := range v.Array() {
				if k.Type == gjson.String && k.Str != "" {
					pp.addedStarterKits = append(pp.addedStarterKits, k.Str)
				} else {
					rep.Dropped++
				}
			}
		} else {
			rep.defaulted("progress.addedStarterKits")
		}
	}
	return pp
}

// upgrade moves a partial record forward to CurrentVersion.
func upgrade(p *partial, rep *Report) {
	rep.Version = p.version
	if p.version < 1 && p.progress.addedStarterKits == nil {
		// Version 0 records never had the field; an empty set is the
		// correct value rather than a repair.
		p.progress.addedStarterKits = []string{}
	}
	if p.version < CurrentVersion {
		p.version = CurrentVersion
	}
}

// complete fills every remaining gap with its default:
// cards [], reviewByCardId {}, totalPoints 0, lastStudyDate "",
// currentStreak 0, badges [], addedStarterKits [].
func complete(p partial, rep *Report) domain.FlashcardData {
	data := domain.NewFlashcardData()

	if p.cards != nil {
		data.Cards = p.cards
	}

	ids := make(map[string]bool, len(data.Cards))
	for _, c := range data.Cards {
		ids[c.ID] = true
	}
	for id, st := range p.reviews {
		if !ids[id] {
			rep.Dropped++
			continue
		}
		data.ReviewByCardID[id] = st
	}

	pp := p.progress
	if pp.totalPoints != nil {
		data.Progress.TotalPoints = max(*pp.totalPoints, 0)
	}
	if pp.lastStudyDate != nil {
		data.Progress.LastStudyDate = *pp.lastStudyDate
	}
	if pp.currentStreak != nil {
		data.Progress.CurrentStreak = max(*pp.currentStreak, 0)
	}
	if pp.badges != nil {
		data.Progress.Badges = dedupe(pp.badges, rep)
	}
	if pp.addedStarterKits != nil {
		data.Progress.AddedStarterKits = dedupe(pp.addedStarterKits, rep)
	}
	return data
}

func dedupe[T comparable](in []T, rep *Report) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if slices.Contains(out, v) {
			rep.Dropped++
			continue
		}
		out = append(out, v)
	}
	return out
}

func intValue(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	return int(v.Int()), true
}

func intField(obj gjson.Result, name string, path func(string) string, rep *Report) int {
	return int(int64Field(obj, name, path, rep))
}

func int64Field(obj gjson.Result, name string, path func(string) string, rep *Report) int64 {
	v := obj.Get(name)
	if v.Type != gjson.Number {
		rep.defaulted(path(name))
		return 0
	}
	return v.Int()
}

func stringField(obj gjson.Result, name string, path func(string) string, rep *Report) string {
	v := obj.Get(name)
	if v.Type != gjson.String {
		rep.defaulted(path(name))
		return ""
	}
	return v.Str
}
