package handler

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/service"
)

// EventHandler handles event registry endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, events)
}

// Roster handles GET /api/v1/events/:city/classes
func (h *EventHandler) Roster(c *gin.Context) {
	classes, err := h.eventService.Roster(c.Request.Context(), c.Param("city"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, classes)
}
