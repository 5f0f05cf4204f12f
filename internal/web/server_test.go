package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/kits"
	"github.com/conorfennell/versekeep/internal/progress"
	"github.com/conorfennell/versekeep/internal/storage"
	"github.com/conorfennell/versekeep/internal/study"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	catalog := kits.Builtin()
	store, _, err := cardstore.Open(context.Background(), db,
		cardstore.WithClock(cardstore.ClockFunc(func() time.Time { return now })),
		cardstore.WithIDGenerator(cardstore.IDFunc(func() string {
			n++
			return fmt.Sprintf("card-%d", n)
		})),
		cardstore.WithKits(catalog),
		cardstore.WithEngine(progress.NewEngine(time.UTC)),
	)
	require.NoError(t, err)

	return NewServer(store, catalog, study.NewService(db, nil), nil)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var john316 = map[string]any{
	"bookId":         "JHN",
	"chapter":        3,
	"verseStart":     16,
	"verseEnd":       16,
	"referenceLabel": "John 3:16",
	"text":           "For God so loved the world",
}

func TestCardLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/cards", map[string]any{"cards": []any{john316}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decode[changeResponse](t, rec)
	assert.True(t, added.Applied)
	assert.True(t, added.Persisted)
	require.Len(t, added.Cards, 1)
	require.Len(t, added.NewBadges, 1)
	assert.Equal(t, "first_card", string(added.NewBadges[0].ID))

	rec = do(t, s, http.MethodGet, "/api/cards/due", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	due := decode[[]map[string]any](t, rec)
	require.Len(t, due, 1)
	assert.Equal(t, "card-1", due[0]["id"])
	assert.Equal(t, "JHN", due[0]["bookId"])
	assert.NotContains(t, due[0], "review")

	rec = do(t, s, http.MethodPost, "/api/cards/card-1/review", map[string]string{"rating": "good"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reviewed := decode[changeResponse](t, rec)
	assert.Equal(t, 10, reviewed.PointsAdded)
	require.NotNil(t, reviewed.Review)
	assert.Equal(t, 1, reviewed.Review.IntervalDays)

	rec = do(t, s, http.MethodGet, "/api/cards/due", nil)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = do(t, s, http.MethodGet, "/api/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[map[string]any](t, rec)
	assert.EqualValues(t, 10, p["totalPoints"])
	assert.EqualValues(t, 1, p["currentStreak"])
	assert.EqualValues(t, 1, p["cardCount"])
	assert.EqualValues(t, 0, p["dueCount"])

	rec = do(t, s, http.MethodDelete, "/api/cards/card-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodDelete, "/api/cards/card-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCardsValidation(t *testing.T) {
	s := newTestServer(t)

	bad := map[string]any{}
	for k, v := range john316 {
		bad[k] = v
	}
	bad["bookId"] = "XYZ"

	testCases := []struct {
		name string
		body any
	}{
		{"unknown book", map[string]any{"cards": []any{bad}}},
		{"empty list", map[string]any{"cards": []any{}}},
		{"unknown field", map[string]any{"cards": []any{john316}, "extra": true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/cards", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestReviewErrors(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/cards", map[string]any{"cards": []any{john316}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/cards/card-1/review", map[string]string{"rating": "hard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/cards/missing/review", map[string]string{"rating": "good"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStarterKits(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/kits/faith", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[changeResponse](t, rec)
	assert.Len(t, first.Cards, 2)

	rec = do(t, s, http.MethodPost, "/api/kits/faith", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[changeResponse](t, rec).Applied)

	rec = do(t, s, http.MethodPost, "/api/kits/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/kits", nil)
	list := decode[[]kitView](t, rec)
	require.Len(t, list, 10)
	for _, k := range list {
		assert.Equal(t, k.ID == "faith", k.Added, k.ID)
	}

	rec = do(t, s, http.MethodGet, "/api/badges", nil)
	badges := decode[[]progress.Badge](t, rec)
	require.Len(t, badges, 18)
	earned := map[string]bool{}
	for _, b := range badges {
		earned[string(b.ID)] = b.Earned
	}
	assert.True(t, earned["first_card"])
	assert.True(t, earned["starter_faith"])
	assert.False(t, earned["starter_peace"])
}

func TestHighlightsAndNotes(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/highlights/jhn/3/16", map[string]string{"color": "green"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/highlights/JHN/3/16", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "green", decode[map[string]any](t, rec)["color"])

	rec = do(t, s, http.MethodPut, "/api/highlights/JHN/3/16", map[string]string{"color": "purple"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/highlights/JHN/99/1", map[string]string{"color": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/highlights/JHN/3/16", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/highlights/JHN/3/16", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/notes/ROM/8/28", map[string]string{"content": "all things"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, s, http.MethodGet, "/api/notes", nil)
	notes := decode[[]map[string]any](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, "all things", notes[0]["content"])

	rec = do(t, s, http.MethodGet, "/api/notes/ROM/x/28", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarks(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/bookmarks", map[string]any{"bookId": "PSA", "chapter": 23, "label": "shepherd"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = do(t, s, http.MethodGet, "/api/bookmarks", nil)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/api/bookmarks/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodDelete, "/api/bookmarks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
