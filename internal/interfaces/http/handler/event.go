package handler

import (
	"io"
	"mime/multipart"
	"strings"

	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandler handles event management endpoints
type EventHandler struct {
	BaseHandler
	eventService *ticketingapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *ticketingapp.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// parseEventID extracts and validates the :id path parameter
func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// readFlierUpload reads the optional "flier" multipart file.
// Returns nil when the form has no flier.
func readFlierUpload(c *gin.Context) (*ticketingapp.FlierUpload, error) {
	fileHeader, err := c.FormFile("flier")
	if err != nil {
		return nil, nil
	}
	return flierFromHeader(fileHeader)
}

func flierFromHeader(fileHeader *multipart.FileHeader) (*ticketingapp.FlierUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &ticketingapp.FlierUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Create creates a new event, optionally with a flier image
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ticketingapp.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flier, err := readFlierUpload(c)
	if err != nil {
		h.BadRequest(c, "Failed to read flier upload")
		return
	}
	if flier != nil && !strings.HasPrefix(flier.ContentType, "image/") {
		h.BadRequest(c, "Flier must be an image")
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), ownerID, req, flier)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, event)
}

// List returns a paginated list of events
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	var filter ticketingapp.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListMine returns the authenticated organizer's events
// GET /api/v1/events/mine
func (h *EventHandler) ListMine(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter ticketingapp.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.eventService.ListByOwner(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single event. The attendee list is included only when the
// requester owns the event.
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	// Anonymous requesters get the public view
	requesterID, _ := getUserID(c)

	event, err := h.eventService.GetByID(c.Request.Context(), requesterID, eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, event)
}

// GetBySlug returns the public view of an event by its URL slug
// GET /api/v1/events/slug/:slug
func (h *EventHandler) GetBySlug(c *gin.Context) {
	event, err := h.eventService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, event)
}

// Update updates an event's details
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req ticketingapp.UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), requesterID, eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, event)
}

// UploadFlier replaces the event's flier image
// POST /api/v1/events/:id/flier
func (h *EventHandler) UploadFlier(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	fileHeader, err := c.FormFile("flier")
	if err != nil {
		h.BadRequest(c, "Flier file is required")
		return
	}
	flier, err := flierFromHeader(fileHeader)
	if err != nil {
		h.BadRequest(c, "Failed to read flier upload")
		return
	}
	if !strings.HasPrefix(flier.ContentType, "image/") {
		h.BadRequest(c, "Flier must be an image")
		return
	}

	event, err := h.eventService.UploadFlier(c.Request.Context(), requesterID, eventID, *flier)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, event)
}

// Delete removes an event, its flier and its chat threads
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), requesterID, eventID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CloseRegistration closes registration for an event
// POST /api/v1/events/:id/close-registration
func (h *EventHandler) CloseRegistration(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.CloseRegistration(c.Request.Context(), requesterID, eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, event)
}

// ListAttendees returns the event's attendee list with passcodes
// GET /api/v1/events/:id/attendees
func (h *EventHandler) ListAttendees(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	attendees, err := h.eventService.ListAttendees(c.Request.Context(), requesterID, eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, attendees)
}
