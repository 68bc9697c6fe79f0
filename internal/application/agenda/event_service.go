package agenda

import (
	"context"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/shared"
)

// EventService manages a user's calendar
type EventService struct {
	eventRepo agenda.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo agenda.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent creates a calendar event for the owner
func (s *EventService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	event, err := agenda.NewEvent(ownerID, req.Title, req.Description,
		agenda.EventType(req.EventType), req.StartDate, req.EndDate, req.FieldID)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	return &resp, nil
}

// GetEvent returns one event of the owner
func (s *EventService) GetEvent(ctx context.Context, ownerID, eventID uuid.UUID) (*EventResponse, error) {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	return &resp, nil
}

// ListEvents returns every event of the owner
func (s *EventService) ListEvents(ctx context.Context, ownerID uuid.UUID) ([]EventResponse, error) {
	events, err := s.eventRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, ToEventResponse(&events[i]))
	}
	return responses, nil
}

// UpdateEvent replaces the content of an event
func (s *EventService) UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.Update(req.Title, req.Description, agenda.EventType(req.EventType),
		req.StartDate, req.EndDate, req.FieldID); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	return &resp, nil
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error {
	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, event.ID)
}

func (s *EventService) ownedEvent(ctx context.Context, ownerID, eventID uuid.UUID) (*agenda.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(ownerID) {
		return nil, shared.ErrUnauthorized
	}
	return event, nil
}
