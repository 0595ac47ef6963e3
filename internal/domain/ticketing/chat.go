package ticketing

import (
	"strings"
	"time"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChatMessage is a single message in an event's chat thread
type ChatMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatThread holds the ordered messages one attendee exchanged on one event.
// Threads are keyed by (event id, passcode) and created lazily on first send.
type ChatThread struct {
	shared.BaseAggregateRoot
	EventID  uuid.UUID
	Passcode string
	Messages []ChatMessage
}

// NewChatThread creates an empty thread for an event/passcode pair
func NewChatThread(eventID uuid.UUID, passcode string) (*ChatThread, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID is required")
	}
	if passcode == "" {
		return nil, shared.NewDomainError("INVALID_PASSCODE", "Passcode is required")
	}
	return &ChatThread{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EventID:           eventID,
		Passcode:          passcode,
		Messages:          make([]ChatMessage, 0),
	}, nil
}

// Append adds a message to the end of the thread
func (t *ChatThread) Append(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_MESSAGE", "Message content cannot be empty")
	}
	if len(content) > 2000 {
		return shared.NewDomainError("INVALID_MESSAGE", "Message content cannot exceed 2000 characters")
	}
	t.Messages = append(t.Messages, ChatMessage{
		Content:   content,
		CreatedAt: time.Now(),
	})
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
