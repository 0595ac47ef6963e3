package ticketing

import (
	"context"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRepository defines persistence operations for events
type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindBySlug(ctx context.Context, slug string) (*Event, error)
	// FindByTitle returns all events whose title matches exactly.
	// The scan flow needs every match to detect ambiguous titles.
	FindByTitle(ctx context.Context, title string) ([]Event, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Event, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, event *Event) error
	// SaveWithLock persists the event with an optimistic-concurrency check
	// on the version column. It returns shared.ErrConcurrencyConflict when
	// another writer modified the event since it was read; this protects
	// the attendee-list read-modify-write from lost updates.
	SaveWithLock(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}
