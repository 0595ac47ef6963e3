package ticketing

import (
	"context"

	"github.com/google/uuid"
)

// ChatRepository defines persistence operations for chat threads
type ChatRepository interface {
	// FindByEventAndPasscode returns shared.ErrNotFound when no thread
	// exists yet for the pair.
	FindByEventAndPasscode(ctx context.Context, eventID uuid.UUID, passcode string) (*ChatThread, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]ChatThread, error)
	Save(ctx context.Context, thread *ChatThread) error
	SaveWithLock(ctx context.Context, thread *ChatThread) error
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
}
