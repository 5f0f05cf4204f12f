package bible

import (
	"errors"
	"testing"
)

func TestBooks(t *testing.T) {
	if len(Books) != 66 {
		t.Fatalf("Expected 66 books, but got %d", len(Books))
	}
	if b, ok := Lookup("PSA"); !ok || b.Chapters != 150 {
		t.Errorf("Expected Psalms with 150 chapters, but got %+v", b)
	}
	if IsBookID("XYZ") {
		t.Error("Expected XYZ not to be a book id")
	}
}

func TestValidateChapter(t *testing.T) {
	if err := ValidateChapter("GEN", 50); err != nil {
		t.Errorf("Expected GEN 50 to be valid, but got %v", err)
	}
	if err := ValidateChapter("GEN", 51); !errors.Is(err, ErrInvalidChapter) {
		t.Errorf("Expected ErrInvalidChapter, but got %v", err)
	}
	if err := ValidateChapter("NOPE", 1); !errors.Is(err, ErrUnknownBook) {
		t.Errorf("Expected ErrUnknownBook, but got %v", err)
	}
}

func TestParseReference(t *testing.T) {
	testCases := []struct {
		input    string
		expected Reference
		label    string
		wantErr  bool
	}{
		{input: "JHN 3:16", expected: Reference{"JHN", 3, 16, 16}, label: "John 3:16"},
		{input: "php 4:6-7", expected: Reference{"PHP", 4, 6, 7}, label: "Philippians 4:6–7"},
		{input: "1CO 13:4 - 7", expected: Reference{"1CO", 13, 4, 7}, label: "1 Corinthians 13:4–7"},
		{input: "JHN 3", wantErr: true},
		{input: "JHN 30:1", wantErr: true},
		{input: "JHN 3:7-5", wantErr: true},
		{input: "Genesis", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			ref, err := ParseReference(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q, but got %+v", tc.input, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			if ref != tc.expected {
				t.Errorf("Expected %+v, but got %+v", tc.expected, ref)
			}
			if ref.Label() != tc.label {
				t.Errorf("Expected label '%s', but got '%s'", tc.label, ref.Label())
			}
		})
	}
}
