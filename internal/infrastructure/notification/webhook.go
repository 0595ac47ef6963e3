package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/eventpass/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure HTTPWebhookNotifier implements WebhookNotifier
var _ ticketingapp.WebhookNotifier = (*HTTPWebhookNotifier)(nil)

// registrationClosedPayload is the JSON body posted when an organizer closes
// registration. Downstream automations use it to pull the final attendee list.
type registrationClosedPayload struct {
	EventTitle string               `json:"event_title"`
	ClosedAt   time.Time            `json:"closed_at"`
	Attendees  []ticketing.Attendee `json:"attendees"`
}

// HTTPWebhookNotifier posts registration-closed notifications to a configured
// endpoint. An empty URL disables delivery.
type HTTPWebhookNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPWebhookNotifier creates a new webhook notifier from configuration
func NewHTTPWebhookNotifier(cfg *config.WebhookConfig, logger *zap.Logger) *HTTPWebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPWebhookNotifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// NotifyRegistrationClosed posts the final attendee list to the endpoint.
func (n *HTTPWebhookNotifier) NotifyRegistrationClosed(ctx context.Context, eventTitle string, attendees []ticketing.Attendee) error {
	if n.url == "" {
		return nil
	}

	if attendees == nil {
		attendees = []ticketing.Attendee{}
	}
	body, err := json.Marshal(registrationClosedPayload{
		EventTitle: eventTitle,
		ClosedAt:   time.Now().UTC(),
		Attendees:  attendees,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	n.logger.Info("Registration-closed webhook delivered",
		zap.String("event", eventTitle),
		zap.Int("attendees", len(attendees)))
	return nil
}
