package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Bookmark marks a chapter, or a verse within it when Verse > 0.
type Bookmark struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse,omitempty"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Highlight colours a single verse.
type Highlight struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note is free text attached to a single verse.
type Note struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertBookmark stores a new bookmark.
func (db *DB) InsertBookmark(ctx context.Context, b Bookmark) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO bookmarks (id, book_id, chapter, verse, label, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.BookID, b.Chapter, b.Verse, b.Label, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark %s: %w", b.ID, err)
	}
	return nil
}

// DeleteBookmark removes a bookmark by id and reports whether it existed.
func (db *DB) DeleteBookmark(ctx context.Context, id string) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark %s: %w", id, err)
	}
	return affected(res)
}

// FindBookmark returns the first bookmark in the chapter. When verse > 0 only
// a bookmark on that verse matches.
func (db *DB) FindBookmark(ctx context.Context, bookID string, chapter, verse int) (*Bookmark, error) {
	query := `
		SELECT id, book_id, chapter, verse, label, created_at
		FROM bookmarks WHERE book_id = ? AND chapter = ?`
	args := []any{bookID, chapter}
	if verse > 0 {
		query += ` AND verse = ?`
		args = append(args, verse)
	}
	query += ` ORDER BY created_at LIMIT 1`

	var b Bookmark
	err := db.conn.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.BookID, &b.Chapter, &b.Verse, &b.Label, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Bookmark not found
		}
		return nil, fmt.Errorf("failed to find bookmark %s %d:%d: %w", bookID, chapter, verse, err)
	}
	return &b, nil
}

// ListBookmarks returns all bookmarks, oldest first.
func (db *DB) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, book_id, chapter, verse, label, created_at
		FROM bookmarks ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.BookID, &b.Chapter, &b.Verse, &b.Label, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// UpsertHighlight stores h, replacing any highlight on the same verse.
func (db *DB) UpsertHighlight(ctx context.Context, h Highlight) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO highlights (id, book_id, chapter, verse, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(book_id, chapter, verse) DO UPDATE
		SET id = excluded.id, color = excluded.color, created_at = excluded.created_at
	`, h.ID, h.BookID, h.Chapter, h.Verse, h.Color, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save highlight %s %d:%d: %w", h.BookID, h.Chapter, h.Verse, err)
	}
	return nil
}

// DeleteHighlight removes the highlight on a verse and reports whether it existed.
func (db *DB) DeleteHighlight(ctx context.Context, bookID string, chapter, verse int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM highlights WHERE book_id = ? AND chapter = ? AND verse = ?
	`, bookID, chapter, verse)
	if err != nil {
		return false, fmt.Errorf("failed to delete highlight %s %d:%d: %w", bookID, chapter, verse, err)
	}
	return affected(res)
}

// FindHighlight returns the highlight on a verse, or nil.
func (db *DB) FindHighlight(ctx context.Context, bookID string, chapter, verse int) (*Highlight, error) {
	var h Highlight
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, book_id, chapter, verse, color, created_at
		FROM highlights WHERE book_id = ? AND chapter = ? AND verse = ?
	`, bookID, chapter, verse).Scan(&h.ID, &h.BookID, &h.Chapter, &h.Verse, &h.Color, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find highlight %s %d:%d: %w", bookID, chapter, verse, err)
	}
	return &h, nil
}

// ListHighlights returns every highlight in reading order.
func (db *DB) ListHighlights(ctx context.Context) ([]Highlight, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, book_id, chapter, verse, color, created_at
		FROM highlights ORDER BY book_id, chapter, verse
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	defer rows.Close()

	highlights := []Highlight{}
	for rows.Next() {
		var h Highlight
		if err := rows.Scan(&h.ID, &h.BookID, &h.Chapter, &h.Verse, &h.Color, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan highlight row: %w", err)
		}
		highlights = append(highlights, h)
	}
	return highlights, rows.Err()
}

// UpsertNote stores n. An existing note on the same verse keeps its id and
// creation time and takes the new content and update time.
func (db *DB) UpsertNote(ctx context.Context, n Note) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (id, book_id, chapter, verse, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(book_id, chapter, verse) DO UPDATE
		SET content = excluded.content, updated_at = excluded.updated_at
	`, n.ID, n.BookID, n.Chapter, n.Verse, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save note %s %d:%d: %w", n.BookID, n.Chapter, n.Verse, err)
	}
	return nil
}

// DeleteNote removes the note on a verse and reports whether it existed.
func (db *DB) DeleteNote(ctx context.Context, bookID string, chapter, verse int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM notes WHERE book_id = ? AND chapter = ? AND verse = ?
	`, bookID, chapter, verse)
	if err != nil {
		return false, fmt.Errorf("failed to delete note %s %d:%d: %w", bookID, chapter, verse, err)
	}
	return affected(res)
}

// FindNote returns the note on a verse, or nil.
func (db *DB) FindNote(ctx context.Context, bookID string, chapter, verse int) (*Note, error) {
	var n Note
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, book_id, chapter, verse, content, created_at, updated_at
		FROM notes WHERE book_id = ? AND chapter = ? AND verse = ?
	`, bookID, chapter, verse).Scan(&n.ID, &n.BookID, &n.Chapter, &n.Verse, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find note %s %d:%d: %w", bookID, chapter, verse, err)
	}
	return &n, nil
}

// ListNotes returns every note in reading order.
func (db *DB) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, book_id, chapter, verse, content, created_at, updated_at
		FROM notes ORDER BY book_id, chapter, verse
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.BookID, &n.Chapter, &n.Verse, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
