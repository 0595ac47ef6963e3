package ticketing

import (
	"context"
	"errors"
	"testing"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEvent(t *testing.T) *ticketing.Event {
	t.Helper()
	event, err := ticketing.NewEvent(uuid.New(), "Tech Summit", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)
	return event
}

func TestRegistrationServiceRegister(t *testing.T) {
	ctx := context.Background()
	req := RegisterRequest{Name: "Ada", Email: "ada@example.com", PhoneNumber: "+1 555 0100"}

	t.Run("registers attendee and sends ticket email", func(t *testing.T) {
		event := newTestEvent(t)
		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
		eventRepo.On("SaveWithLock", ctx, event).Return(nil)
		qrcode.On("GeneratePNG", mock.MatchedBy(func(payload string) bool {
			_, title, err := ticketing.ParseQRPayload(payload)
			return err == nil && title == "Tech Summit"
		})).Return([]byte("png"), nil)
		mailer.On("SendTicket", ctx, mock.MatchedBy(func(email TicketEmail) bool {
			return email.RecipientEmail == "ada@example.com" &&
				email.FlierURL == ticketing.NoFlierMessage &&
				len(email.QRCodePNG) > 0
		})).Return(nil)

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		resp, err := service.Register(ctx, event.ID, req)

		require.NoError(t, err)
		assert.True(t, resp.EmailSent)
		assert.Len(t, resp.Passcode, ticketing.PasscodeLength)
		assert.Len(t, event.Attendees, 1)
		mailer.AssertExpectations(t)
	})

	t.Run("duplicate registration sends no email", func(t *testing.T) {
		event := newTestEvent(t)
		_, err := event.RegisterAttendee("Ada", "ada@example.com", "")
		require.NoError(t, err)

		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		resp, err := service.Register(ctx, event.ID, req)

		assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)
		assert.Nil(t, resp)
		eventRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "SendTicket", mock.Anything, mock.Anything)
	})

	t.Run("closed registration sends no email", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.CloseRegistration())

		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		_, err := service.Register(ctx, event.ID, req)

		assert.ErrorIs(t, err, shared.ErrRegistrationClosed)
		mailer.AssertNotCalled(t, "SendTicket", mock.Anything, mock.Anything)
	})

	t.Run("failed write aborts before email", func(t *testing.T) {
		event := newTestEvent(t)
		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
		eventRepo.On("SaveWithLock", ctx, event).Return(errors.New("database down"))

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		resp, err := service.Register(ctx, event.ID, req)

		assert.Error(t, err)
		assert.Nil(t, resp)
		mailer.AssertNotCalled(t, "SendTicket", mock.Anything, mock.Anything)
	})

	t.Run("failed email keeps the registration", func(t *testing.T) {
		event := newTestEvent(t)
		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
		eventRepo.On("SaveWithLock", ctx, event).Return(nil)
		qrcode.On("GeneratePNG", mock.Anything).Return([]byte("png"), nil)
		mailer.On("SendTicket", ctx, mock.Anything).Return(errors.New("smtp down"))

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		resp, err := service.Register(ctx, event.ID, req)

		require.NoError(t, err)
		assert.False(t, resp.EmailSent)
		assert.NotEmpty(t, resp.Passcode)
		assert.Len(t, event.Attendees, 1)
	})

	t.Run("retries after losing the optimistic lock race", func(t *testing.T) {
		event := newTestEvent(t)
		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
		eventRepo.On("SaveWithLock", ctx, event).Return(shared.ErrConcurrencyConflict).Once()
		eventRepo.On("SaveWithLock", ctx, event).Return(nil).Once()
		qrcode.On("GeneratePNG", mock.Anything).Return([]byte("png"), nil)
		mailer.On("SendTicket", ctx, mock.Anything).Return(nil)

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		resp, err := service.Register(ctx, event.ID, req)

		require.NoError(t, err)
		assert.True(t, resp.EmailSent)
		eventRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})
}

func TestRegistrationServiceResendTicket(t *testing.T) {
	ctx := context.Background()
	event := newTestEvent(t)
	attendee, err := event.RegisterAttendee("Ada", "ada@example.com", "")
	require.NoError(t, err)

	t.Run("owner can resend", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		qrcode := new(MockQRCodeGenerator)
		mailer := new(MockTicketMailer)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
		qrcode.On("GeneratePNG", mock.Anything).Return([]byte("png"), nil)
		mailer.On("SendTicket", ctx, mock.Anything).Return(nil)

		service := NewRegistrationService(eventRepo, qrcode, mailer, zap.NewNop())
		err := service.ResendTicket(ctx, event.OwnerID, event.ID, attendee.Passcode)

		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)

		service := NewRegistrationService(eventRepo, new(MockQRCodeGenerator), new(MockTicketMailer), zap.NewNop())
		err := service.ResendTicket(ctx, uuid.New(), event.ID, attendee.Passcode)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown passcode is rejected", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)

		service := NewRegistrationService(eventRepo, new(MockQRCodeGenerator), new(MockTicketMailer), zap.NewNop())
		err := service.ResendTicket(ctx, event.OwnerID, event.ID, "nope")

		assert.ErrorIs(t, err, shared.ErrInvalidPasscode)
	})
}
