package agenda

import (
	"time"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/agenda"
)

// CreateEventRequest represents a request to create a calendar event
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     time.Time  `json:"end_date" binding:"required"`
	FieldID     *uuid.UUID `json:"field_id"`
}

// UpdateEventRequest represents a request to update a calendar event
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     time.Time  `json:"end_date" binding:"required"`
	FieldID     *uuid.UUID `json:"field_id"`
}

// EventResponse represents a calendar event in API responses
type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	EventType   string     `json:"event_type"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	FieldID     *uuid.UUID `json:"field_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToEventResponse maps an event to its response form
func ToEventResponse(e *agenda.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventType:   string(e.EventType),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		FieldID:     e.FieldID,
		CreatedAt:   e.CreatedAt,
	}
}
