package handler

import (
	agendaapp "github.com/agro/backend/internal/application/agenda"
	"github.com/gin-gonic/gin"
)

// AgendaHandler handles calendar event endpoints
type AgendaHandler struct {
	BaseHandler
	eventService *agendaapp.EventService
}

// NewAgendaHandler creates a new AgendaHandler
func NewAgendaHandler(eventService *agendaapp.EventService) *AgendaHandler {
	return &AgendaHandler{eventService: eventService}
}

// Create adds a calendar event
func (h *AgendaHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req agendaapp.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// Get returns one calendar event
func (h *AgendaHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// List returns the user's calendar events
func (h *AgendaHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Update changes a calendar event
func (h *AgendaHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req agendaapp.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// Delete removes a calendar event
func (h *AgendaHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
