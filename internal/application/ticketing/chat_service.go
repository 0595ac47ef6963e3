package ticketing

import (
	"context"
	"errors"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
)

// ChatService handles the per-attendee chat thread attached to each event.
// Attendees authenticate with the passcode from their ticket.
type ChatService struct {
	eventRepo ticketing.EventRepository
	chatRepo  ticketing.ChatRepository
}

// NewChatService creates a new ChatService
func NewChatService(eventRepo ticketing.EventRepository, chatRepo ticketing.ChatRepository) *ChatService {
	return &ChatService{
		eventRepo: eventRepo,
		chatRepo:  chatRepo,
	}
}

// Send appends a message to the attendee's thread, creating the thread on
// first use
func (s *ChatService) Send(ctx context.Context, eventID uuid.UUID, passcode string, req SendMessageRequest) ([]ChatMessageResponse, error) {
	if err := s.authorize(ctx, eventID, passcode); err != nil {
		return nil, err
	}

	created := false
	thread, err := s.chatRepo.FindByEventAndPasscode(ctx, eventID, passcode)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		thread, err = ticketing.NewChatThread(eventID, passcode)
		if err != nil {
			return nil, err
		}
		created = true
	}

	if err := thread.Append(req.Content); err != nil {
		return nil, err
	}

	// A brand new thread has no stored version to compare against, so the
	// optimistic lock only guards threads loaded from the repository.
	if created {
		err = s.chatRepo.Save(ctx, thread)
	} else {
		err = s.chatRepo.SaveWithLock(ctx, thread)
	}
	if err != nil {
		return nil, err
	}

	return ToChatMessageResponses(thread.Messages), nil
}

// History returns the attendee's messages in send order. An attendee who
// never sent anything gets an empty history, not an error.
func (s *ChatService) History(ctx context.Context, eventID uuid.UUID, passcode string) ([]ChatMessageResponse, error) {
	if err := s.authorize(ctx, eventID, passcode); err != nil {
		return nil, err
	}

	thread, err := s.chatRepo.FindByEventAndPasscode(ctx, eventID, passcode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []ChatMessageResponse{}, nil
		}
		return nil, err
	}

	return ToChatMessageResponses(thread.Messages), nil
}

func (s *ChatService) authorize(ctx context.Context, eventID uuid.UUID, passcode string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.FindAttendeeByPasscode(passcode) == nil {
		return shared.ErrInvalidPasscode
	}
	return nil
}
