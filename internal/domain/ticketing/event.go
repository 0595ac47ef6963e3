package ticketing

import (
	"regexp"
	"strings"
	"time"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlaceholderFlierURL is the sentinel flier URL for events created without a
// flier image. Event deletion must not attempt a storage delete when the
// flier URL equals this value.
const PlaceholderFlierURL = "https://google.com"

// NoFlierMessage replaces the sentinel in outbound ticket emails
const NoFlierMessage = "No flier for this event"

// Attendee is a registered attendee stored on its parent event.
// The attendee list on the event is the sole source of truth; there is no
// separate attendee table.
type Attendee struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Passcode     string    `json:"passcode"`
	IsPresent    bool      `json:"is_present"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Event represents a ticketed event created by an organizer.
// It is the aggregate root for registration and check-in operations.
type Event struct {
	shared.BaseAggregateRoot
	OwnerID             uuid.UUID
	Title               string
	Slug                string
	Date                string // YYYY-MM-DD
	Time                string // HH:MM
	Venue               string
	Description         string
	Note                string
	FlierURL            string
	DisableRegistration bool
	Attendees           []Attendee
}

// NewEvent creates a new event with required fields.
// The slug is derived from the title and the flier URL defaults to the
// placeholder sentinel until a flier is uploaded.
func NewEvent(ownerID uuid.UUID, title, date, eventTime, venue string) (*Event, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Event owner is required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if venue == "" {
		return nil, shared.NewDomainError("INVALID_VENUE", "Event venue cannot be empty")
	}

	return &Event{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Title:             title,
		Slug:              CreateSlug(title),
		Date:              date,
		Time:              eventTime,
		Venue:             venue,
		FlierURL:          PlaceholderFlierURL,
		Attendees:         make([]Attendee, 0),
	}, nil
}

// Update updates the event's editable fields. The slug follows the title.
func (e *Event) Update(title, date, eventTime, venue, description, note string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if venue == "" {
		return shared.NewDomainError("INVALID_VENUE", "Event venue cannot be empty")
	}

	e.Title = title
	e.Slug = CreateSlug(title)
	e.Date = date
	e.Time = eventTime
	e.Venue = venue
	e.Description = description
	e.Note = note
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// AssignSlug overrides the derived slug. Two events may share a title, so
// when the stored slug collides the caller stores a suffixed variant instead.
// Does not bump the version: the slug adjustment rides along with whatever
// mutation produced it.
func (e *Event) AssignSlug(slug string) error {
	if slug == "" || CreateSlug(slug) != slug {
		return shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}
	e.Slug = slug
	return nil
}

// SetFlierURL records the public view URL of the uploaded flier
func (e *Event) SetFlierURL(url string) {
	if url == "" {
		url = PlaceholderFlierURL
	}
	e.FlierURL = url
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// HasFlier reports whether a real flier file is associated with the event
func (e *Event) HasFlier() bool {
	return e.FlierURL != "" && e.FlierURL != PlaceholderFlierURL
}

// DisplayFlierURL returns the flier URL suitable for outbound emails,
// replacing the placeholder sentinel with a human-readable message.
func (e *Event) DisplayFlierURL() string {
	if !e.HasFlier() {
		return NoFlierMessage
	}
	return e.FlierURL
}

// CloseRegistration disables new registrations for the event
func (e *Event) CloseRegistration() error {
	if e.DisableRegistration {
		return shared.NewDomainError("ALREADY_CLOSED", "Registration is already closed for this event")
	}
	e.DisableRegistration = true
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// RegisterAttendee appends a new attendee with a freshly generated passcode.
// The duplicate check is a linear scan over existing attendees by exact,
// case-sensitive email match. The returned attendee carries the passcode
// that must be encoded into the ticket QR code.
func (e *Event) RegisterAttendee(name, email, phone string) (*Attendee, error) {
	if e.DisableRegistration {
		return nil, shared.ErrRegistrationClosed
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attendee name cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	for i := range e.Attendees {
		if e.Attendees[i].Email == email {
			return nil, shared.ErrAlreadyRegistered
		}
	}

	attendee := Attendee{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		Passcode:     GeneratePasscode(),
		IsPresent:    false,
		RegisteredAt: time.Now(),
	}
	e.Attendees = append(e.Attendees, attendee)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return &attendee, nil
}

// FindAttendeeByPasscode returns the attendee whose stored passcode equals
// the scanned one, or nil when no attendee matches.
func (e *Event) FindAttendeeByPasscode(passcode string) *Attendee {
	for i := range e.Attendees {
		if e.Attendees[i].Passcode == passcode {
			return &e.Attendees[i]
		}
	}
	return nil
}

// MarkPresent flips the presence flag for the attendee with the given
// passcode. Marking an already-present attendee is a no-op.
func (e *Event) MarkPresent(passcode string) error {
	for i := range e.Attendees {
		if e.Attendees[i].Passcode == passcode {
			if e.Attendees[i].IsPresent {
				return nil
			}
			e.Attendees[i].IsPresent = true
			e.UpdatedAt = time.Now()
			e.IncrementVersion()
			return nil
		}
	}
	return shared.ErrInvalidPasscode
}

// IsOwnedBy reports whether the event belongs to the given user
func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	return e.OwnerID == userID
}

// Validation functions

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot exceed 200 characters")
	}
	if CreateSlug(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Event title must contain at least one letter or digit")
	}
	return nil
}

func validateDate(date string) error {
	if !dateFormat.MatchString(date) {
		return shared.NewDomainError("INVALID_DATE", "Event date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return shared.NewDomainError("INVALID_DATE", "Event date is not a valid calendar date")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

var phoneRegex = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
