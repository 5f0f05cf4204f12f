package cardstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/versekeep/internal/domain"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// IDGenerator produces unique card ids.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// UUIDGenerator issues random UUIDv4 ids.
var UUIDGenerator IDGenerator = IDFunc(func() string { return uuid.NewString() })

// Persister writes the whole aggregate after a mutation.
type Persister interface {
	Save(ctx context.Context, data domain.FlashcardData) error
}

// KitCatalog resolves starter kits by id.
type KitCatalog interface {
	Lookup(id string) (domain.StarterKit, bool)
}

type nopPersister struct{}

func (nopPersister) Save(context.Context, domain.FlashcardData) error { return nil }

type emptyCatalog struct{}

func (emptyCatalog) Lookup(string) (domain.StarterKit, bool) { return domain.StarterKit{}, false }
