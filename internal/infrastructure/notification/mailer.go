package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"

	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/eventpass/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Ensure SMTPTicketMailer implements TicketMailer
var _ ticketingapp.TicketMailer = (*SMTPTicketMailer)(nil)

const qrAttachmentName = "ticket-qrcode.png"

// ticketTemplate is the HTML body of the ticket email. The QR code image is
// embedded inline and referenced by content ID.
var ticketTemplate = template.Must(template.New("ticket").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>You're going to {{.EventTitle}}!</h2>
  <p>Hi {{.RecipientName}},</p>
  <p>Your registration is confirmed. Present the QR code below at the entrance.</p>
  <p><img src="cid:{{.QRCodeCID}}" alt="Ticket QR code" width="256" height="256"/></p>
  <table cellpadding="4">
    <tr><td><strong>Date</strong></td><td>{{.EventDate}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.EventTime}}</td></tr>
    <tr><td><strong>Venue</strong></td><td>{{.EventVenue}}</td></tr>
    {{if .EventNote}}<tr><td><strong>Note</strong></td><td>{{.EventNote}}</td></tr>{{end}}
    <tr><td><strong>Flier</strong></td><td>{{if .HasFlier}}<a href="{{.FlierURL}}">View flier</a>{{else}}{{.FlierURL}}{{end}}</td></tr>
  </table>
  <p>Your passcode: <strong>{{.Passcode}}</strong></p>
  <p>See you there!</p>
</div>
`))

type ticketTemplateData struct {
	RecipientName string
	EventTitle    string
	EventDate     string
	EventTime     string
	EventVenue    string
	EventNote     string
	FlierURL      string
	HasFlier      bool
	Passcode      string
	QRCodeCID     string
}

// SMTPTicketMailer sends ticket emails over SMTP.
type SMTPTicketMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPTicketMailer creates a new mailer from configuration
func NewSMTPTicketMailer(cfg *config.MailConfig, logger *zap.Logger) *SMTPTicketMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &SMTPTicketMailer{
		dialer: dialer,
		from:   from,
		logger: logger,
	}
}

// SendTicket renders and sends a ticket email with the QR code inlined.
func (m *SMTPTicketMailer) SendTicket(ctx context.Context, email ticketingapp.TicketEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := ticketTemplateData{
		RecipientName: email.RecipientName,
		EventTitle:    email.EventTitle,
		EventDate:     FormatEventDate(email.EventDate),
		EventTime:     email.EventTime,
		EventVenue:    email.EventVenue,
		EventNote:     email.EventNote,
		FlierURL:      email.FlierURL,
		HasFlier:      email.FlierURL != ticketing.NoFlierMessage && email.FlierURL != "",
		Passcode:      email.Passcode,
		QRCodeCID:     qrAttachmentName,
	}

	var body bytes.Buffer
	if err := ticketTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render ticket email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.RecipientEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your ticket for %s", email.EventTitle))
	msg.SetBody("text/html", body.String())
	msg.Embed(qrAttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(email.QRCodePNG)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}

	m.logger.Info("Ticket email sent",
		zap.String("recipient", email.RecipientEmail),
		zap.String("event", email.EventTitle))
	return nil
}
