package farm

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LivestockExpense is a pure financial record. It carries the same currency
// normalization and calendar mirroring as transactions but never touches the
// stock ledger.
type LivestockExpense struct {
	shared.OwnedAggregateRoot
	Name    string     `gorm:"not null"`
	FieldID *uuid.UUID `gorm:"type:uuid;index"`
	Date    time.Time  `gorm:"type:date;not null;index"`
	Note    string     `gorm:"type:text"`

	Cost         decimal.Decimal      `gorm:"type:decimal(19,2);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null"`
	ExchangeRate *decimal.Decimal     `gorm:"type:decimal(19,4)"`
	CostUSD      decimal.Decimal      `gorm:"type:decimal(19,2);not null"`

	AgendaEventID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LivestockExpense) TableName() string {
	return "livestock_expenses"
}

// NewLivestockExpense creates an expense record
func NewLivestockExpense(ownerID uuid.UUID, name string, fieldID *uuid.UUID, date time.Time, note string) (*LivestockExpense, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Expense name cannot be empty")
	}
	return &LivestockExpense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		FieldID:            fieldID,
		Date:               date,
		Note:               note,
	}, nil
}

// SetCost records the cost with its already normalized USD amount. Rate is
// nil for USD-denominated expenses.
func (e *LivestockExpense) SetCost(cost decimal.Decimal, currency valueobject.Currency, rate *decimal.Decimal, costUSD decimal.Decimal) {
	e.Cost = cost
	e.Currency = currency
	e.ExchangeRate = rate
	e.CostUSD = costUSD
}

// UpdateDetails changes the descriptive attributes
func (e *LivestockExpense) UpdateDetails(name string, fieldID *uuid.UUID, date time.Time, note string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Expense name cannot be empty")
	}
	e.Name = name
	e.FieldID = fieldID
	e.Date = date
	e.Note = note
	e.IncrementVersion()
	return nil
}

// LinkAgendaEvent stores the id of the mirrored calendar event
func (e *LivestockExpense) LinkAgendaEvent(eventID uuid.UUID) {
	e.AgendaEventID = &eventID
}
