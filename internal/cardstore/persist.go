package cardstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/record"
)

// ValueStore is the key/value surface of the database the record lives in.
type ValueStore interface {
	GetValue(ctx context.Context, key string) ([]byte, bool, error)
	PutValue(ctx context.Context, key string, value []byte) error
}

// RecordPersister saves the aggregate as one encoded record under record.Key.
type RecordPersister struct {
	Values ValueStore
}

// Save encodes data and replaces the stored record.
func (p RecordPersister) Save(ctx context.Context, data domain.FlashcardData) error {
	raw, err := record.Encode(data)
	if err != nil {
		return err
	}
	return p.Values.PutValue(ctx, record.Key, raw)
}

// Load reads the stored record. A missing record yields an empty aggregate;
// a damaged one is repaired and the repairs are logged.
func Load(ctx context.Context, values ValueStore, logger *slog.Logger) (domain.FlashcardData, record.Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	raw, ok, err := values.GetValue(ctx, record.Key)
	if err != nil {
		return domain.FlashcardData{}, record.Report{}, fmt.Errorf("failed to load flashcards: %w", err)
	}
	if !ok {
		logger.Info("No saved flashcards, starting fresh")
		return domain.NewFlashcardData(), record.Report{Version: record.CurrentVersion}, nil
	}

	data, rep := record.Decode(raw)
	switch {
	case rep.Corrupt:
		logger.Warn("Saved flashcards are unreadable, starting fresh", "bytes", len(raw))
	case !rep.Clean():
		logger.Warn("Repaired saved flashcards",
			"version", rep.Version,
			"defaulted", rep.Defaulted,
			"dropped", rep.Dropped,
		)
	default:
		logger.Info("Loaded flashcards", "version", rep.Version, "cards", len(data.Cards))
	}
	return data, rep, nil
}

// Open loads the stored record and returns a store that saves back to it,
// unless WithPersister chose another destination.
func Open(ctx context.Context, values ValueStore, opts ...Option) (*Store, record.Report, error) {
	s := New(domain.NewFlashcardData(), opts...)
	data, rep, err := Load(ctx, values, s.logger)
	if err != nil {
		return nil, rep, err
	}
	s.data = data
	if _, ok := s.persister.(nopPersister); ok {
		s.persister = RecordPersister{Values: values}
	}
	return s, rep, nil
}
