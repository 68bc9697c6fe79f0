package agenda

import (
	"context"

	"github.com/google/uuid"

	farmapp "github.com/agro/backend/internal/application/farm"
)

// MirrorGateway adapts the EventService to the calendar mirror used by the
// livestock services.
type MirrorGateway struct {
	events *EventService
}

// NewMirrorGateway creates a mirror gateway over the event service
func NewMirrorGateway(events *EventService) *MirrorGateway {
	return &MirrorGateway{events: events}
}

// CreateEvent creates a mirror event and returns its id
func (g *MirrorGateway) CreateEvent(ctx context.Context, ownerID uuid.UUID, input farmapp.CalendarEventInput) (uuid.UUID, error) {
	resp, err := g.events.CreateEvent(ctx, ownerID, CreateEventRequest{
		Title:       input.Title,
		Description: input.Description,
		EventType:   string(input.EventType),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		FieldID:     input.FieldID,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

// UpdateEvent rewrites a mirror event
func (g *MirrorGateway) UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, input farmapp.CalendarEventInput) error {
	_, err := g.events.UpdateEvent(ctx, ownerID, eventID, UpdateEventRequest{
		Title:       input.Title,
		Description: input.Description,
		EventType:   string(input.EventType),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		FieldID:     input.FieldID,
	})
	return err
}

// DeleteEvent removes a mirror event
func (g *MirrorGateway) DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error {
	return g.events.DeleteEvent(ctx, ownerID, eventID)
}

var _ farmapp.AgendaGateway = (*MirrorGateway)(nil)
