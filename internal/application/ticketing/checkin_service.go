package ticketing

import (
	"context"
	"errors"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"go.uber.org/zap"
)

// CheckinService validates scanned ticket QR codes at the venue entrance
type CheckinService struct {
	eventRepo ticketing.EventRepository
	logger    *zap.Logger
}

// NewCheckinService creates a new CheckinService
func NewCheckinService(eventRepo ticketing.EventRepository, logger *zap.Logger) *CheckinService {
	return &CheckinService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Scan validates a scanned QR payload and marks the attendee present.
// With DryRun set the ticket is validated without recording presence.
// Lookup is by exact event title; zero matches yield EVENT_NOT_FOUND and
// multiple matches yield AMBIGUOUS_TITLE rather than guessing.
func (s *CheckinService) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	passcode, title, err := ticketing.ParseQRPayload(req.Payload)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, shared.ErrEventNotFound
	}
	if len(events) > 1 {
		return nil, shared.ErrAmbiguousTitle
	}

	event := &events[0]
	attendee := event.FindAttendeeByPasscode(passcode)
	if attendee == nil {
		return nil, shared.ErrInvalidPasscode
	}

	result := &ScanResult{
		EventID:        event.ID,
		EventTitle:     event.Title,
		AttendeeName:   attendee.Name,
		AttendeeEmail:  attendee.Email,
		AlreadyPresent: attendee.IsPresent,
	}

	if req.DryRun || attendee.IsPresent {
		return result, nil
	}

	if err := event.MarkPresent(passcode); err != nil {
		return nil, err
	}
	if err := s.eventRepo.SaveWithLock(ctx, event); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Warn("check-in lost an update race, presence not recorded",
				zap.String("event_id", event.ID.String()))
		}
		return nil, err
	}

	result.MarkedPresent = true
	return result, nil
}
