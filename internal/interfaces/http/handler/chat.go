package handler

import (
	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/gin-gonic/gin"
)

// ChatHandler handles attendee chat endpoints. Attendees authenticate with
// the passcode from their ticket instead of an account.
type ChatHandler struct {
	BaseHandler
	chatService *ticketingapp.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *ticketingapp.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send appends a message to the attendee's thread for the event
// POST /api/v1/events/:id/chat/:passcode
func (h *ChatHandler) Send(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req ticketingapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	messages, err := h.chatService.Send(c.Request.Context(), eventID, c.Param("passcode"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, messages)
}

// History returns the attendee's thread for the event
// GET /api/v1/events/:id/chat/:passcode
func (h *ChatHandler) History(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	messages, err := h.chatService.History(c.Request.Context(), eventID, c.Param("passcode"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, messages)
}
