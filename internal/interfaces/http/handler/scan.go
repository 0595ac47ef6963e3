package handler

import (
	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/gin-gonic/gin"
)

// ScanHandler handles door check-in endpoints
type ScanHandler struct {
	BaseHandler
	checkinService *ticketingapp.CheckinService
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(checkinService *ticketingapp.CheckinService) *ScanHandler {
	return &ScanHandler{checkinService: checkinService}
}

// Scan validates a scanned QR payload and marks the attendee present.
// Set dry_run to verify the ticket without recording presence.
// POST /api/v1/scan
func (h *ScanHandler) Scan(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ticketingapp.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkinService.Scan(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
