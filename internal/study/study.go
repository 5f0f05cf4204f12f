// Package study manages per-verse study annotations: bookmarks, highlights
// and notes.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/versekeep/internal/bible"
	"github.com/conorfennell/versekeep/internal/storage"
	"github.com/conorfennell/versekeep/internal/validate"
)

// Colors lists the highlight colours in display order.
var Colors = []string{"yellow", "green", "blue", "red"}

// Repository is the persistence the service needs. *storage.DB satisfies it.
type Repository interface {
	InsertBookmark(ctx context.Context, b storage.Bookmark) error
	DeleteBookmark(ctx context.Context, id string) (bool, error)
	FindBookmark(ctx context.Context, bookID string, chapter, verse int) (*storage.Bookmark, error)
	ListBookmarks(ctx context.Context) ([]storage.Bookmark, error)

	UpsertHighlight(ctx context.Context, h storage.Highlight) error
	DeleteHighlight(ctx context.Context, bookID string, chapter, verse int) (bool, error)
	FindHighlight(ctx context.Context, bookID string, chapter, verse int) (*storage.Highlight, error)
	ListHighlights(ctx context.Context) ([]storage.Highlight, error)

	UpsertNote(ctx context.Context, n storage.Note) error
	DeleteNote(ctx context.Context, bookID string, chapter, verse int) (bool, error)
	FindNote(ctx context.Context, bookID string, chapter, verse int) (*storage.Note, error)
	ListNotes(ctx context.Context) ([]storage.Note, error)
}

// Verse addresses a single verse.
type Verse struct {
	BookID  string `json:"bookId" validate:"required,bookid"`
	Chapter int    `json:"chapter" validate:"required,gte=1"`
	Verse   int    `json:"verse" validate:"required,gte=1"`
}

// BookmarkInput describes a new bookmark. Verse 0 bookmarks the chapter.
type BookmarkInput struct {
	BookID  string `json:"bookId" validate:"required,bookid"`
	Chapter int    `json:"chapter" validate:"required,gte=1"`
	Verse   int    `json:"verse" validate:"gte=0"`
	Label   string `json:"label" validate:"max=200"`
}

type highlightInput struct {
	Verse
	Color string `json:"color" validate:"required,oneof=yellow green blue red"`
}

type noteInput struct {
	Verse
	Content string `json:"content" validate:"required,max=10000"`
}

// Service validates annotation requests and stores them.
type Service struct {
	repo   Repository
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// NewService returns a service backed by repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: logger.With("component", "study"),
	}
}

func checkChapter(bookID string, chapter int) error {
	if err := bible.ValidateChapter(bookID, chapter); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalid, err)
	}
	return nil
}

func (v Verse) check() error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	return checkChapter(v.BookID, v.Chapter)
}

// AddBookmark stores a new bookmark.
func (s *Service) AddBookmark(ctx context.Context, in BookmarkInput) (storage.Bookmark, error) {
	in.Label = strings.TrimSpace(in.Label)
	if err := validate.Struct(in); err != nil {
		return storage.Bookmark{}, err
	}
	if err := checkChapter(in.BookID, in.Chapter); err != nil {
		return storage.Bookmark{}, err
	}

	b := storage.Bookmark{
		ID:        s.newID(),
		BookID:    in.BookID,
		Chapter:   in.Chapter,
		Verse:     in.Verse,
		Label:     in.Label,
		CreatedAt: s.now(),
	}
	if err := s.repo.InsertBookmark(ctx, b); err != nil {
		return storage.Bookmark{}, err
	}
	s.logger.Info("Added bookmark", "book", b.BookID, "chapter", b.Chapter, "verse", b.Verse)
	return b, nil
}

// RemoveBookmark deletes a bookmark by id. Unknown ids report false.
func (s *Service) RemoveBookmark(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteBookmark(ctx, id)
}

// FindBookmark returns the first bookmark in a chapter, or on a single verse
// when verse > 0.
func (s *Service) FindBookmark(ctx context.Context, bookID string, chapter, verse int) (*storage.Bookmark, error) {
	return s.repo.FindBookmark(ctx, bookID, chapter, verse)
}

// Bookmarks lists every bookmark.
func (s *Service) Bookmarks(ctx context.Context) ([]storage.Bookmark, error) {
	return s.repo.ListBookmarks(ctx)
}

// SetHighlight colours a verse, replacing any previous highlight on it.
func (s *Service) SetHighlight(ctx context.Context, v Verse, color string) (storage.Highlight, error) {
	in := highlightInput{Verse: v, Color: strings.ToLower(strings.TrimSpace(color))}
	if err := validate.Struct(in); err != nil {
		return storage.Highlight{}, err
	}
	if err := v.check(); err != nil {
		return storage.Highlight{}, err
	}

	h := storage.Highlight{
		ID:        s.newID(),
		BookID:    v.BookID,
		Chapter:   v.Chapter,
		Verse:     v.Verse,
		Color:     in.Color,
		CreatedAt: s.now(),
	}
	if err := s.repo.UpsertHighlight(ctx, h); err != nil {
		return storage.Highlight{}, err
	}
	return h, nil
}

// RemoveHighlight clears the highlight on a verse.
func (s *Service) RemoveHighlight(ctx context.Context, v Verse) (bool, error) {
	return s.repo.DeleteHighlight(ctx, v.BookID, v.Chapter, v.Verse)
}

// Highlight returns the highlight on a verse, or nil.
func (s *Service) Highlight(ctx context.Context, v Verse) (*storage.Highlight, error) {
	return s.repo.FindHighlight(ctx, v.BookID, v.Chapter, v.Verse)
}

// Highlights lists every highlight.
func (s *Service) Highlights(ctx context.Context) ([]storage.Highlight, error) {
	return s.repo.ListHighlights(ctx)
}

// SaveNote creates the note on a verse or replaces its content.
func (s *Service) SaveNote(ctx context.Context, v Verse, content string) (storage.Note, error) {
	in := noteInput{Verse: v, Content: strings.TrimSpace(content)}
	if err := validate.Struct(in); err != nil {
		return storage.Note{}, err
	}
	if err := v.check(); err != nil {
		return storage.Note{}, err
	}

	now := s.now()
	err := s.repo.UpsertNote(ctx, storage.Note{
		ID:        s.newID(),
		BookID:    v.BookID,
		Chapter:   v.Chapter,
		Verse:     v.Verse,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return storage.Note{}, err
	}

	saved, err := s.repo.FindNote(ctx, v.BookID, v.Chapter, v.Verse)
	if err != nil {
		return storage.Note{}, err
	}
	if saved == nil {
		return storage.Note{}, fmt.Errorf("note %s %d:%d vanished after save", v.BookID, v.Chapter, v.Verse)
	}
	return *saved, nil
}

// RemoveNote deletes the note on a verse.
func (s *Service) RemoveNote(ctx context.Context, v Verse) (bool, error) {
	return s.repo.DeleteNote(ctx, v.BookID, v.Chapter, v.Verse)
}

// Note returns the note on a verse, or nil.
func (s *Service) Note(ctx context.Context, v Verse) (*storage.Note, error) {
	return s.repo.FindNote(ctx, v.BookID, v.Chapter, v.Verse)
}

// Notes lists every note.
func (s *Service) Notes(ctx context.Context) ([]storage.Note, error) {
	return s.repo.ListNotes(ctx)
}
