package agenda

import (
	"context"

	"github.com/google/uuid"
)

// EventRepository persists agenda events
type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Event, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}
