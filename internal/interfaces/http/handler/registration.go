package handler

import (
	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles attendee registration endpoints
type RegistrationHandler struct {
	BaseHandler
	registrationService *ticketingapp.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService *ticketingapp.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register registers an attendee for an event and emails the ticket
// POST /api/v1/events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req ticketingapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.registrationService.Register(c.Request.Context(), eventID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// ResendTicket re-sends an attendee's ticket email
// POST /api/v1/events/:id/attendees/:passcode/resend
func (h *RegistrationHandler) ResendTicket(c *gin.Context) {
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

	err = h.registrationService.ResendTicket(c.Request.Context(), requesterID, eventID, c.Param("passcode"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
