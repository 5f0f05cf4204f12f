// Package bible holds the book allowlist used to validate references.
package bible

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Book is one entry of the canon.
type Book struct {
	ID       string
	Name     string
	Chapters int
}

var (
	ErrUnknownBook    = errors.New("unknown book")
	ErrInvalidChapter = errors.New("chapter out of range")
	ErrInvalidVerses  = errors.New("invalid verse range")
)

var byID = func() map[string]Book {
	m := make(map[string]Book, len(Books))
	for _, b := range Books {
		m[b.ID] = b
	}
	return m
}()

// Lookup returns the book with the given id.
func Lookup(id string) (Book, bool) {
	b, ok := byID[id]
	return b, ok
}

// IsBookID reports whether id is in the allowlist.
func IsBookID(id string) bool {
	_, ok := byID[id]
	return ok
}

// ValidateChapter checks that chapter exists in the book.
func ValidateChapter(bookID string, chapter int) error {
	b, ok := byID[bookID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBook, bookID)
	}
	if chapter < 1 || chapter > b.Chapters {
		return fmt.Errorf("%w: %s has %d chapters, got %d", ErrInvalidChapter, bookID, b.Chapters, chapter)
	}
	return nil
}

// Reference is a parsed "BOOK C:V" or "BOOK C:V-W" reference.
type Reference struct {
	BookID     string
	Chapter    int
	VerseStart int
	VerseEnd   int
}

// ParseReference parses references such as "JHN 3:16" and "PHP 4:6-7".
func ParseReference(s string) (Reference, error) {
	bookID, rest, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Reference{}, fmt.Errorf("reference %q: missing chapter", s)
	}
	bookID = strings.ToUpper(bookID)
	chapterStr, verses, ok := strings.Cut(strings.TrimSpace(rest), ":")
	if !ok {
		return Reference{}, fmt.Errorf("reference %q: missing verse", s)
	}
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil {
		return Reference{}, fmt.Errorf("reference %q: %w", s, ErrInvalidChapter)
	}
	if err := ValidateChapter(bookID, chapter); err != nil {
		return Reference{}, err
	}

	startStr, endStr, isRange := strings.Cut(verses, "-")
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil || start < 1 {
		return Reference{}, fmt.Errorf("reference %q: %w", s, ErrInvalidVerses)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil || end < start {
			return Reference{}, fmt.Errorf("reference %q: %w", s, ErrInvalidVerses)
		}
	}
	return Reference{BookID: bookID, Chapter: chapter, VerseStart: start, VerseEnd: end}, nil
}

// Label renders a display label such as "John 3:16" or "Philippians 4:6–7".
func (r Reference) Label() string {
	name := r.BookID
	if b, ok := byID[r.BookID]; ok {
		name = b.Name
	}
	if r.VerseEnd > r.VerseStart {
		return fmt.Sprintf("%s %d:%d–%d", name, r.Chapter, r.VerseStart, r.VerseEnd)
	}
	return fmt.Sprintf("%s %d:%d", name, r.Chapter, r.VerseStart)
}
