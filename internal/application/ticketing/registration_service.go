package ticketing

import (
	"context"
	"errors"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saveRetries bounds how often a registration is replayed after losing an
// optimistic-lock race against a concurrent registration on the same event.
const saveRetries = 3

// RegistrationService handles attendee self-registration
type RegistrationService struct {
	eventRepo ticketing.EventRepository
	qrcode    QRCodeGenerator
	mailer    TicketMailer
	logger    *zap.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	eventRepo ticketing.EventRepository,
	qrcode QRCodeGenerator,
	mailer TicketMailer,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		eventRepo: eventRepo,
		qrcode:    qrcode,
		mailer:    mailer,
		logger:    logger,
	}
}

// Register registers an attendee for an event and emails their ticket.
// The attendee record is only kept when the write succeeds; a failed write
// means no email is sent. A failed email does not roll the registration
// back, the response reports delivery separately.
func (s *RegistrationService) Register(ctx context.Context, eventID uuid.UUID, req RegisterRequest) (*RegistrationResponse, error) {
	var event *ticketing.Event
	var attendee *ticketing.Attendee

	for attempt := 0; ; attempt++ {
		var err error
		event, err = s.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			return nil, err
		}

		attendee, err = event.RegisterAttendee(req.Name, req.Email, req.PhoneNumber)
		if err != nil {
			return nil, err
		}

		err = s.eventRepo.SaveWithLock(ctx, event)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt+1 >= saveRetries {
			return nil, err
		}
	}

	response := &RegistrationResponse{
		EventID:    event.ID,
		EventTitle: event.Title,
		Name:       attendee.Name,
		Email:      attendee.Email,
		Passcode:   attendee.Passcode,
	}

	if err := s.sendTicket(ctx, event, attendee); err != nil {
		s.logger.Warn("ticket email delivery failed",
			zap.String("event_id", event.ID.String()),
			zap.String("attendee_email", attendee.Email),
			zap.Error(err))
		return response, nil
	}

	response.EmailSent = true
	return response, nil
}

// ResendTicket re-sends the ticket email for an existing registration.
// Only the event owner may trigger a resend.
func (s *RegistrationService) ResendTicket(ctx context.Context, requesterID, eventID uuid.UUID, passcode string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.IsOwnedBy(requesterID) {
		return shared.ErrForbidden
	}

	attendee := event.FindAttendeeByPasscode(passcode)
	if attendee == nil {
		return shared.ErrInvalidPasscode
	}

	return s.sendTicket(ctx, event, attendee)
}

func (s *RegistrationService) sendTicket(ctx context.Context, event *ticketing.Event, attendee *ticketing.Attendee) error {
	png, err := s.qrcode.GeneratePNG(ticketing.QRPayload(attendee.Passcode, event.Title))
	if err != nil {
		return err
	}

	return s.mailer.SendTicket(ctx, TicketEmail{
		RecipientName:  attendee.Name,
		RecipientEmail: attendee.Email,
		EventTitle:     event.Title,
		EventDate:      event.Date,
		EventTime:      event.Time,
		EventVenue:     event.Venue,
		EventNote:      event.Note,
		FlierURL:       event.DisplayFlierURL(),
		Passcode:       attendee.Passcode,
		QRCodePNG:      png,
	})
}
