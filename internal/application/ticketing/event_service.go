package ticketing

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slugAttempts caps how many suffixed slugs are tried when titles collide
const slugAttempts = 10

// EventService handles event lifecycle operations for organizers
type EventService struct {
	eventRepo ticketing.EventRepository
	chatRepo  ticketing.ChatRepository
	storage   FlierStorage
	webhook   WebhookNotifier
	logger    *zap.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo ticketing.EventRepository,
	chatRepo ticketing.ChatRepository,
	storage FlierStorage,
	webhook WebhookNotifier,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		chatRepo:  chatRepo,
		storage:   storage,
		webhook:   webhook,
		logger:    logger,
	}
}

// Create creates a new event, uploading the flier first when one is provided
func (s *EventService) Create(ctx context.Context, ownerID uuid.UUID, req CreateEventRequest, flier *FlierUpload) (*EventResponse, error) {
	event, err := ticketing.NewEvent(ownerID, req.Title, req.Date, req.Time, req.Venue)
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.Note != "" {
		if err := event.Update(req.Title, req.Date, req.Time, req.Venue, req.Description, req.Note); err != nil {
			return nil, err
		}
	}

	if flier != nil {
		url, err := s.storage.Upload(ctx, flier.Filename, flier.ContentType, flier.Data)
		if err != nil {
			return nil, err
		}
		event.SetFlierURL(url)
	}

	if err := s.saveWithUniqueSlug(ctx, event, s.eventRepo.Save); err != nil {
		// The flier was uploaded before the write; don't leave it orphaned
		if event.HasFlier() {
			if derr := s.storage.Delete(ctx, event.FlierURL); derr != nil {
				s.logger.Warn("failed to delete orphaned flier",
					zap.String("flier_url", event.FlierURL),
					zap.Error(derr))
			}
		}
		return nil, err
	}

	response := ToEventResponse(event, true)
	return &response, nil
}

// GetByID retrieves an event by ID. Attendee passcodes are included only
// when the requester owns the event.
func (s *EventService) GetByID(ctx context.Context, requesterID, eventID uuid.UUID) (*EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	response := ToEventResponse(event, event.IsOwnedBy(requesterID))
	return &response, nil
}

// GetBySlug retrieves an event by its public slug.
// The attendee list is never exposed through this lookup.
func (s *EventService) GetBySlug(ctx context.Context, slug string) (*EventResponse, error) {
	event, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToEventResponse(event, false)
	return &response, nil
}

// List retrieves events with filtering and pagination
func (s *EventService) List(ctx context.Context, filter EventListFilter) (*shared.Paginated[EventListResponse], error) {
	domainFilter := buildFilter(filter)

	events, err := s.eventRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.eventRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]EventListResponse, 0, len(events))
	for i := range events {
		items = append(items, ToEventListResponse(&events[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByOwner retrieves the requesting organizer's events
func (s *EventService) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter EventListFilter) (*shared.Paginated[EventListResponse], error) {
	domainFilter := buildFilter(filter)

	events, err := s.eventRepo.FindByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.eventRepo.CountByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]EventListResponse, 0, len(events))
	for i := range events {
		items = append(items, ToEventListResponse(&events[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates an event's editable fields
func (s *EventService) Update(ctx context.Context, requesterID, eventID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	if err := event.Update(req.Title, req.Date, req.Time, req.Venue, req.Description, req.Note); err != nil {
		return nil, err
	}

	if err := s.saveWithUniqueSlug(ctx, event, s.eventRepo.SaveWithLock); err != nil {
		return nil, err
	}

	response := ToEventResponse(event, true)
	return &response, nil
}

// UploadFlier replaces the event's flier image. The previous flier file is
// removed from storage unless it was the placeholder.
func (s *EventService) UploadFlier(ctx context.Context, requesterID, eventID uuid.UUID, flier FlierUpload) (*EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, flier.Filename, flier.ContentType, flier.Data)
	if err != nil {
		return nil, err
	}

	oldURL := event.FlierURL
	hadFlier := event.HasFlier()
	event.SetFlierURL(url)

	if err := s.eventRepo.SaveWithLock(ctx, event); err != nil {
		return nil, err
	}

	if hadFlier {
		if err := s.storage.Delete(ctx, oldURL); err != nil {
			s.logger.Warn("failed to delete replaced flier",
				zap.String("event_id", eventID.String()),
				zap.String("flier_url", oldURL),
				zap.Error(err))
		}
	}

	response := ToEventResponse(event, true)
	return &response, nil
}

// Delete removes an event along with its flier file and chat threads.
// The flier is only deleted from storage when a real file was uploaded.
func (s *EventService) Delete(ctx context.Context, requesterID, eventID uuid.UUID) error {
	event, err := s.findOwnedEvent(ctx, requesterID, eventID)
	if err != nil {
		return err
	}

	if event.HasFlier() {
		if err := s.storage.Delete(ctx, event.FlierURL); err != nil {
			s.logger.Warn("failed to delete event flier",
				zap.String("event_id", eventID.String()),
				zap.String("flier_url", event.FlierURL),
				zap.Error(err))
		}
	}

	if err := s.chatRepo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// CloseRegistration disables new registrations and notifies the configured
// webhook with the final attendee list. Webhook delivery is best effort.
func (s *EventService) CloseRegistration(ctx context.Context, requesterID, eventID uuid.UUID) (*EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	if err := event.CloseRegistration(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.SaveWithLock(ctx, event); err != nil {
		return nil, err
	}

	if err := s.webhook.NotifyRegistrationClosed(ctx, event.Title, event.Attendees); err != nil {
		s.logger.Warn("registration-closed webhook delivery failed",
			zap.String("event_id", eventID.String()),
			zap.String("event_title", event.Title),
			zap.Error(err))
	}

	response := ToEventResponse(event, true)
	return &response, nil
}

// ListAttendees returns the full attendee list for the event owner
func (s *EventService) ListAttendees(ctx context.Context, requesterID, eventID uuid.UUID) ([]AttendeeResponse, error) {
	event, err := s.findOwnedEvent(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	attendees := make([]AttendeeResponse, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		attendees = append(attendees, ToAttendeeResponse(a, true))
	}
	return attendees, nil
}

// saveWithUniqueSlug runs save, retrying with a numbered slug suffix while
// the unique slug index rejects the write. Two organizers may both title an
// event "Gala"; the second one is stored as gala-2.
func (s *EventService) saveWithUniqueSlug(ctx context.Context, event *ticketing.Event, save func(context.Context, *ticketing.Event) error) error {
	base := event.Slug
	for n := 1; ; n++ {
		err := save(ctx, event)
		if err == nil || !errors.Is(err, shared.ErrAlreadyExists) || n >= slugAttempts {
			return err
		}
		if err := event.AssignSlug(fmt.Sprintf("%s-%d", base, n+1)); err != nil {
			return err
		}
	}
}

func (s *EventService) findOwnedEvent(ctx context.Context, requesterID, eventID uuid.UUID) (*ticketing.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(requesterID) {
		return nil, shared.ErrForbidden
	}
	return event, nil
}

func buildFilter(filter EventListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
