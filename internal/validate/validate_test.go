package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/versekeep/internal/domain"
)

func TestCardSpec(t *testing.T) {
	valid := domain.CardSpec{
		BookID: "GEN", Chapter: 1, VerseStart: 1, VerseEnd: 1,
		ReferenceLabel: "Genesis 1:1", Text: "In the beginning, God created the heavens and the earth.",
	}
	require.NoError(t, Struct(valid))

	testCases := []struct {
		name   string
		mutate func(*domain.CardSpec)
		field  string
	}{
		{name: "unknown book", mutate: func(s *domain.CardSpec) { s.BookID = "XXX" }, field: "bookId"},
		{name: "chapter past end", mutate: func(s *domain.CardSpec) { s.Chapter = 51 }, field: "chapter"},
		{name: "reversed verses", mutate: func(s *domain.CardSpec) { s.VerseEnd = 0; s.VerseStart = 3 }, field: "verseEnd"},
		{name: "missing text", mutate: func(s *domain.CardSpec) { s.Text = "" }, field: "text"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid
			tc.mutate(&spec)
			err := Struct(spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}
