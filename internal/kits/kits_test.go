package kits

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/versekeep/internal/domain"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	all := c.All()
	if len(all) != 10 {
		t.Fatalf("Expected 10 built-in kits, but got %d", len(all))
	}
	if all[0].ID != "salvation" || all[9].ID != "new_life" {
		t.Errorf("Expected catalog order salvation..new_life, but got %s..%s", all[0].ID, all[9].ID)
	}

	faith, ok := c.Lookup("faith")
	if !ok {
		t.Fatal("Expected to find the faith kit")
	}
	if len(faith.Verses) != 2 {
		t.Errorf("Expected faith kit to have 2 verses, but got %d", len(faith.Verses))
	}
	if faith.BadgeID != "starter_faith" {
		t.Errorf("Expected badge starter_faith, but got %s", faith.BadgeID)
	}

	if _, ok := c.Lookup("nope"); ok {
		t.Error("Expected unknown kit lookup to fail")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c := Builtin()
	all := c.All()
	all[0].ID = "changed"
	if c.All()[0].ID != "salvation" {
		t.Error("Expected All to return a copy of the catalog")
	}
}

func verse(book string, chapter, start, end int) domain.CardSpec {
	return domain.CardSpec{
		BookID:         book,
		Chapter:        chapter,
		VerseStart:     start,
		VerseEnd:       end,
		ReferenceLabel: "label",
		Text:           "text",
	}
}

func TestWithOverridesByID(t *testing.T) {
	c := Builtin()
	override := domain.StarterKit{
		ID:      "peace",
		Label:   "Peace (extended)",
		BadgeID: "starter_peace",
		Verses:  []domain.CardSpec{verse("JHN", 14, 27, 27)},
	}
	extra := domain.StarterKit{
		ID:      "joy",
		Label:   "Joy",
		BadgeID: "starter_joy",
		Verses:  []domain.CardSpec{verse("NEH", 8, 10, 10)},
	}

	merged, err := c.With(override, extra)
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if len(merged.All()) != 11 {
		t.Errorf("Expected 11 kits, but got %d", len(merged.All()))
	}
	peace, _ := merged.Lookup("peace")
	if peace.Label != "Peace (extended)" {
		t.Errorf("Expected overridden label, but got %q", peace.Label)
	}
	if merged.All()[1].ID != "peace" {
		t.Errorf("Expected override to keep position 1, but got %s", merged.All()[1].ID)
	}
	if original, _ := c.Lookup("peace"); original.Label != "Peace" {
		t.Errorf("Expected original catalog to be unchanged, but got %q", original.Label)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		kit  domain.StarterKit
	}{
		{"missing id", domain.StarterKit{Label: "x", BadgeID: "starter_x", Verses: []domain.CardSpec{verse("JHN", 1, 1, 1)}}},
		{"bad badge", domain.StarterKit{ID: "x", Label: "x", BadgeID: "x", Verses: []domain.CardSpec{verse("JHN", 1, 1, 1)}}},
		{"no verses", domain.StarterKit{ID: "x", Label: "x", BadgeID: "starter_x"}},
		{"unknown book", domain.StarterKit{ID: "x", Label: "x", BadgeID: "starter_x", Verses: []domain.CardSpec{verse("XYZ", 1, 1, 1)}}},
		{"reversed range", domain.StarterKit{ID: "x", Label: "x", BadgeID: "starter_x", Verses: []domain.CardSpec{verse("JHN", 1, 5, 2)}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.kit)
			if !errors.Is(err, ErrInvalidKit) {
				t.Errorf("Expected ErrInvalidKit, but got %v", err)
			}
		})
	}
}

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

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "joy.yaml"), joyKit)
	mustWrite(t, filepath.Join(dir, "broken.yml"), "- id: [")
	mustWrite(t, filepath.Join(dir, "README.md"), "# kits")
	mustWrite(t, filepath.Join(dir, ".git", "config.yaml"), joyKit)

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 kit, but got %d", len(loaded))
	}
	if loaded[0].ID != "joy" || loaded[0].Verses[0].BookID != "NEH" {
		t.Errorf("Unexpected kit loaded: %+v", loaded[0])
	}
}

func TestSyncLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "nested", "joy.yaml"), joyKit)

	loaded, err := Sync(context.Background(), dir, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("Expected 1 kit, but got %d", len(loaded))
	}
}

func TestGitURLToLocalPath(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{"https://github.com/acme/verse-kits.git", filepath.Join("repos", "github.com", "acme", "verse-kits"), false},
		{"git@github.com:acme/verse-kits.git", filepath.Join("repos", "github.com", "acme", "verse-kits"), false},
		{"not a url", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := gitURLToLocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tc.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, but got %q", tc.expected, got)
			}
		})
	}
}

func TestIsGitSource(t *testing.T) {
	if !IsGitSource("https://github.com/acme/kits") {
		t.Error("Expected https URL to be a git source")
	}
	if !IsGitSource("git@github.com:acme/kits.git") {
		t.Error("Expected ssh URL to be a git source")
	}
	if IsGitSource("/home/me/kits") {
		t.Error("Expected a path not to be a git source")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
