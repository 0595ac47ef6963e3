package models

import (
	"encoding/json"
	"fmt"

	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
)

// EventModel is the persistence model for the Event aggregate.
// Attendees are stored denormalized as a JSONB document on the event row;
// the version column guards concurrent registrations.
type EventModel struct {
	AggregateModel
	OwnerID             uuid.UUID `gorm:"type:uuid;not null;index"`
	Title               string    `gorm:"type:varchar(200);not null;index"`
	Slug                string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	Date                string    `gorm:"type:varchar(10);not null"`
	Time                string    `gorm:"type:varchar(5);not null"`
	Venue               string    `gorm:"type:varchar(200);not null"`
	Description         string    `gorm:"type:text"`
	Note                string    `gorm:"type:text"`
	FlierURL            string    `gorm:"type:text;not null"`
	DisableRegistration bool      `gorm:"not null;default:false"`
	Attendees           string    `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event aggregate.
func (m *EventModel) ToDomain() (*ticketing.Event, error) {
	var attendees []ticketing.Attendee
	if m.Attendees != "" {
		if err := json.Unmarshal([]byte(m.Attendees), &attendees); err != nil {
			return nil, fmt.Errorf("failed to decode attendees for event %s: %w", m.ID, err)
		}
	}

	event := &ticketing.Event{
		OwnerID:             m.OwnerID,
		Title:               m.Title,
		Slug:                m.Slug,
		Date:                m.Date,
		Time:                m.Time,
		Venue:               m.Venue,
		Description:         m.Description,
		Note:                m.Note,
		FlierURL:            m.FlierURL,
		DisableRegistration: m.DisableRegistration,
		Attendees:           attendees,
	}
	m.PopulateAggregateRoot(&event.BaseAggregateRoot)
	return event, nil
}

// FromDomain populates the persistence model from a domain Event aggregate.
func (m *EventModel) FromDomain(e *ticketing.Event) error {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []ticketing.Attendee{}
	}
	encoded, err := json.Marshal(attendees)
	if err != nil {
		return fmt.Errorf("failed to encode attendees for event %s: %w", e.ID, err)
	}

	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.OwnerID = e.OwnerID
	m.Title = e.Title
	m.Slug = e.Slug
	m.Date = e.Date
	m.Time = e.Time
	m.Venue = e.Venue
	m.Description = e.Description
	m.Note = e.Note
	m.FlierURL = e.FlierURL
	m.DisableRegistration = e.DisableRegistration
	m.Attendees = string(encoded)
	return nil
}

// EventModelFromDomain creates a new persistence model from a domain Event aggregate.
func EventModelFromDomain(e *ticketing.Event) (*EventModel, error) {
	m := &EventModel{}
	if err := m.FromDomain(e); err != nil {
		return nil, err
	}
	return m, nil
}

// ChatThreadModel is the persistence model for the ChatThread aggregate.
// Messages are stored as an ordered JSONB array on the thread row.
type ChatThreadModel struct {
	AggregateModel
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_event_passcode,priority:1"`
	Passcode string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_chat_event_passcode,priority:2"`
	Messages string    `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (ChatThreadModel) TableName() string {
	return "chat_threads"
}

// ToDomain converts the persistence model to a domain ChatThread aggregate.
func (m *ChatThreadModel) ToDomain() (*ticketing.ChatThread, error) {
	var messages []ticketing.ChatMessage
	if m.Messages != "" {
		if err := json.Unmarshal([]byte(m.Messages), &messages); err != nil {
			return nil, fmt.Errorf("failed to decode messages for thread %s: %w", m.ID, err)
		}
	}

	thread := &ticketing.ChatThread{
		EventID:  m.EventID,
		Passcode: m.Passcode,
		Messages: messages,
	}
	m.PopulateAggregateRoot(&thread.BaseAggregateRoot)
	return thread, nil
}

// FromDomain populates the persistence model from a domain ChatThread aggregate.
func (m *ChatThreadModel) FromDomain(t *ticketing.ChatThread) error {
	messages := t.Messages
	if messages == nil {
		messages = []ticketing.ChatMessage{}
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages for thread %s: %w", t.ID, err)
	}

	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.EventID = t.EventID
	m.Passcode = t.Passcode
	m.Messages = string(encoded)
	return nil
}

// ChatThreadModelFromDomain creates a new persistence model from a domain ChatThread aggregate.
func ChatThreadModelFromDomain(t *ticketing.ChatThread) (*ChatThreadModel, error) {
	m := &ChatThreadModel{}
	if err := m.FromDomain(t); err != nil {
		return nil, err
	}
	return m, nil
}
