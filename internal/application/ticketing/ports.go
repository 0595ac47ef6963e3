package ticketing

import (
	"context"

	"github.com/eventpass/backend/internal/domain/ticketing"
)

// FlierStorage stores event flier images and serves them by public URL
type FlierStorage interface {
	// Upload stores the file and returns its public view URL.
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	// Delete removes the file referenced by a view URL previously returned
	// from Upload. Callers must not pass the placeholder flier URL.
	Delete(ctx context.Context, fileURL string) error
}

// QRCodeGenerator renders a payload string into a PNG image
type QRCodeGenerator interface {
	GeneratePNG(payload string) ([]byte, error)
}

// TicketEmail carries everything the mailer needs to send one ticket
type TicketEmail struct {
	RecipientName  string
	RecipientEmail string
	EventTitle     string
	EventDate      string // YYYY-MM-DD, formatted for display by the mailer
	EventTime      string
	EventVenue     string
	EventNote      string
	FlierURL       string // display URL, never the raw placeholder sentinel
	Passcode       string
	QRCodePNG      []byte
}

// TicketMailer sends ticket emails to registered attendees
type TicketMailer interface {
	SendTicket(ctx context.Context, email TicketEmail) error
}

// WebhookNotifier pushes event lifecycle notifications to a configured
// external endpoint
type WebhookNotifier interface {
	NotifyRegistrationClosed(ctx context.Context, eventTitle string, attendees []ticketing.Attendee) error
}
