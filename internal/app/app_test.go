package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/versekeep/internal/config"
	"github.com/conorfennell/versekeep/internal/domain"
)

const joyKit = `
- id: joy
  label: Joy
  badgeId: starter_joy
  verses:
    - bookId: NEH
      chapter: 8
      verseStart: 10
      verseEnd: 10
      referenceLabel: Nehemiah 8:10
      text: The joy of the LORD is your strength.
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "app.db")
	cfg.Timezone = "UTC"
	cfg.ReposDir = filepath.Join(t.TempDir(), "repos")
	return &cfg
}

func TestNewWiresEverything(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := testConfig(t)
	kitsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(kitsDir, "joy.yaml"), []byte(joyKit), 0o644))
	cfg.KitsDir = kitsDir

	var logs bytes.Buffer
	a, err := New(context.Background(), cfg, &logs)
	require.NoError(t, err)

	_, ok := a.Kits.Lookup("joy")
	assert.True(t, ok)
	assert.Len(t, a.Kits.All(), 11)

	ch, err := a.Store.AddStarterKit(context.Background(), "joy")
	require.NoError(t, err)
	assert.True(t, ch.Applied)
	require.NoError(t, a.Close())

	// Reopening sees the saved kit import.
	a, err = New(context.Background(), cfg, &logs)
	require.NoError(t, err)
	defer a.Close()
	assert.True(t, a.Store.Progress().HasStarterKit("joy"))
	assert.True(t, a.Store.Progress().HasBadge(domain.BadgeID("starter_joy")))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/kits", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadCatalogSkipsMissingCheckout(t *testing.T) {
	cfg := testConfig(t)
	cfg.KitsRepo = "https://example.com/acme/kits.git"

	catalog, err := LoadCatalog(cfg)
	require.NoError(t, err)
	assert.Len(t, catalog.All(), 10)
}

func TestNewRejectsBadLogFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogFormat = "xml"
	_, err := New(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}
