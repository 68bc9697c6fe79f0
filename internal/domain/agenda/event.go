package agenda

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventType tags a calendar event with its purpose
type EventType string

const (
	EventVaccination EventType = "VACCINATION"
	EventSowing      EventType = "SOWING"
	EventHarvest     EventType = "HARVEST"
	EventGeneral     EventType = "GENERAL"
	EventTask        EventType = "TASK"

	// Livestock mirror event types
	EventPurchase         EventType = "PURCHASE"
	EventSale             EventType = "SALE"
	EventLivestockBirth   EventType = "LIVESTOCK_BIRTH"
	EventLivestockMove    EventType = "LIVESTOCK_MOVE"
	EventHealth           EventType = "HEALTH"
	EventLivestockExpense EventType = "LIVESTOCK_EXPENSE"
)

var knownEventTypes = map[EventType]struct{}{
	EventVaccination: {}, EventSowing: {}, EventHarvest: {}, EventGeneral: {},
	EventTask: {}, EventPurchase: {}, EventSale: {}, EventLivestockBirth: {},
	EventLivestockMove: {}, EventHealth: {}, EventLivestockExpense: {},
}

// IsValid reports whether the event type is known
func (e EventType) IsValid() bool {
	_, ok := knownEventTypes[e]
	return ok
}

// Event is a calendar entry on a user's agenda. Livestock transactions and
// expenses keep a best-effort mirror event here.
type Event struct {
	shared.OwnedAggregateRoot
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time `gorm:"not null"`
	EventType   EventType `gorm:"type:varchar(30);not null"`
	FieldID     *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "agenda_events"
}

// NewEvent creates a calendar event
func NewEvent(ownerID uuid.UUID, title, description string, eventType EventType, start, end time.Time, fieldID *uuid.UUID) (*Event, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if !eventType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown event type")
	}
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATES", "Event end cannot precede its start")
	}
	return &Event{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              title,
		Description:        description,
		StartDate:          start,
		EndDate:            end,
		EventType:          eventType,
		FieldID:            fieldID,
	}, nil
}

// Update replaces the event content
func (e *Event) Update(title, description string, eventType EventType, start, end time.Time, fieldID *uuid.UUID) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if !eventType.IsValid() {
		return shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown event type")
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_DATES", "Event end cannot precede its start")
	}
	e.Title = title
	e.Description = description
	e.EventType = eventType
	e.StartDate = start
	e.EndDate = end
	e.FieldID = fieldID
	e.IncrementVersion()
	return nil
}
