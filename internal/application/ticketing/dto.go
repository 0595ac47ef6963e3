package ticketing

import (
	"time"

	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
)

// =============================================================================
// Event DTOs
// =============================================================================

// FlierUpload carries an uploaded flier image through the application layer
type FlierUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateEventRequest represents a request to create a new event.
// Events are created from a multipart form so the flier image can ride along.
type CreateEventRequest struct {
	Title       string `json:"title" form:"title" binding:"required,min=1,max=200"`
	Date        string `json:"date" form:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" form:"time" binding:"required"`
	Venue       string `json:"venue" form:"venue" binding:"required,max=500"`
	Description string `json:"description" form:"description" binding:"max=2000"`
	Note        string `json:"note" form:"note" binding:"max=2000"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title       string `json:"title" form:"title" binding:"required,min=1,max=200"`
	Date        string `json:"date" form:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" form:"time" binding:"required"`
	Venue       string `json:"venue" form:"venue" binding:"required,max=500"`
	Description string `json:"description" form:"description" binding:"max=2000"`
	Note        string `json:"note" form:"note" binding:"max=2000"`
}

// EventListFilter represents filter options for listing events
type EventListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// AttendeeResponse represents an attendee in API responses.
// The passcode is only exposed to the event owner.
type AttendeeResponse struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Passcode     string    `json:"passcode,omitempty"`
	IsPresent    bool      `json:"is_present"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID                  uuid.UUID          `json:"id"`
	OwnerID             uuid.UUID          `json:"owner_id"`
	Title               string             `json:"title"`
	Slug                string             `json:"slug"`
	Date                string             `json:"date"`
	Time                string             `json:"time"`
	Venue               string             `json:"venue"`
	Description         string             `json:"description"`
	Note                string             `json:"note"`
	FlierURL            string             `json:"flier_url"`
	DisableRegistration bool               `json:"disable_registration"`
	AttendeeCount       int                `json:"attendee_count"`
	Attendees           []AttendeeResponse `json:"attendees,omitempty"`
	Version             int                `json:"version"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// EventListResponse represents an event in list API responses
type EventListResponse struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Slug                string    `json:"slug"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Venue               string    `json:"venue"`
	FlierURL            string    `json:"flier_url"`
	DisableRegistration bool      `json:"disable_registration"`
	AttendeeCount       int       `json:"attendee_count"`
	CreatedAt           time.Time `json:"created_at"`
}

// =============================================================================
// Registration DTOs
// =============================================================================

// RegisterRequest represents an attendee registration request
type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email,max=200"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
}

// RegistrationResponse represents a completed registration
type RegistrationResponse struct {
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Passcode   string    `json:"passcode"`
	EmailSent  bool      `json:"email_sent"`
}

// =============================================================================
// Scan DTOs
// =============================================================================

// ScanRequest represents a QR code scan submitted by an organizer
type ScanRequest struct {
	Payload string `json:"payload" binding:"required,max=500"`
	DryRun  bool   `json:"dry_run"`
}

// ScanResult represents the outcome of a valid scan
type ScanResult struct {
	EventID        uuid.UUID `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	AttendeeName   string    `json:"attendee_name"`
	AttendeeEmail  string    `json:"attendee_email"`
	AlreadyPresent bool      `json:"already_present"`
	MarkedPresent  bool      `json:"marked_present"`
}

// =============================================================================
// Chat DTOs
// =============================================================================

// SendMessageRequest represents a chat message submission
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// ChatMessageResponse represents a chat message in API responses
type ChatMessageResponse struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Converters
// =============================================================================

// ToAttendeeResponse converts a domain attendee to a response DTO
func ToAttendeeResponse(a ticketing.Attendee, includePasscode bool) AttendeeResponse {
	resp := AttendeeResponse{
		Name:         a.Name,
		Email:        a.Email,
		PhoneNumber:  a.PhoneNumber,
		IsPresent:    a.IsPresent,
		RegisteredAt: a.RegisteredAt,
	}
	if includePasscode {
		resp.Passcode = a.Passcode
	}
	return resp
}

// ToEventResponse converts a domain event to a response DTO.
// The attendee list (and passcodes) is included only for the event owner.
func ToEventResponse(e *ticketing.Event, includeAttendees bool) EventResponse {
	resp := EventResponse{
		ID:                  e.ID,
		OwnerID:             e.OwnerID,
		Title:               e.Title,
		Slug:                e.Slug,
		Date:                e.Date,
		Time:                e.Time,
		Venue:               e.Venue,
		Description:         e.Description,
		Note:                e.Note,
		FlierURL:            e.FlierURL,
		DisableRegistration: e.DisableRegistration,
		AttendeeCount:       len(e.Attendees),
		Version:             e.GetVersion(),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if includeAttendees {
		resp.Attendees = make([]AttendeeResponse, 0, len(e.Attendees))
		for _, a := range e.Attendees {
			resp.Attendees = append(resp.Attendees, ToAttendeeResponse(a, true))
		}
	}
	return resp
}

// ToEventListResponse converts a domain event to a list response DTO
func ToEventListResponse(e *ticketing.Event) EventListResponse {
	return EventListResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Slug:                e.Slug,
		Date:                e.Date,
		Time:                e.Time,
		Venue:               e.Venue,
		FlierURL:            e.FlierURL,
		DisableRegistration: e.DisableRegistration,
		AttendeeCount:       len(e.Attendees),
		CreatedAt:           e.CreatedAt,
	}
}

// ToChatMessageResponses converts domain chat messages to response DTOs
func ToChatMessageResponses(messages []ticketing.ChatMessage) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, ChatMessageResponse{
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return responses
}
