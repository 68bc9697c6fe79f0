package farm

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LivestockTransaction records a single livestock event and its financial
// detail. Once the stock effect has been applied the transaction is an
// immutable fact; updates reverse the old effect and apply the new one.
// Source and target fields cannot change after creation - correcting them
// requires delete and recreate.
type LivestockTransaction struct {
	shared.OwnedAggregateRoot
	SourceFieldID *uuid.UUID `gorm:"type:uuid;index"`
	TargetFieldID *uuid.UUID `gorm:"type:uuid;index"`
	Category      Category   `gorm:"type:varchar(20);not null"`
	Quantity      int        `gorm:"not null"`
	ActionType    ActionType `gorm:"type:varchar(20);not null"`
	Date          time.Time  `gorm:"type:date;not null;index"`
	Notes         string     `gorm:"type:text"`

	PricePerUnit    *decimal.Decimal     `gorm:"type:decimal(19,2)"`
	Currency        valueobject.Currency `gorm:"type:varchar(3)"`
	ExchangeRate    *decimal.Decimal     `gorm:"type:decimal(19,4)"`
	PricePerUnitUSD *decimal.Decimal     `gorm:"type:decimal(19,2)"`
	SalvageValue    *decimal.Decimal     `gorm:"type:decimal(19,2)"`
	SalvageValueUSD *decimal.Decimal     `gorm:"type:decimal(19,2)"`

	AgendaEventID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LivestockTransaction) TableName() string {
	return "livestock_transactions"
}

// NewLivestockTransaction creates a transaction for an already validated
// action. Field references must match what the action type requires.
func NewLivestockTransaction(ownerID uuid.UUID, action ActionType, category Category, qty int,
	sourceFieldID, targetFieldID *uuid.UUID, date time.Time, notes string) (*LivestockTransaction, error) {
	if qty <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown action type")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown livestock category")
	}
	if action.RequiresSource() && sourceFieldID == nil {
		return nil, shared.ErrMissingField
	}
	if action.RequiresTarget() && targetFieldID == nil {
		return nil, shared.ErrMissingField
	}
	if sourceFieldID != nil && targetFieldID != nil && *sourceFieldID == *targetFieldID {
		return nil, shared.NewDomainError("SAME_FIELD", "Source and target field must differ")
	}
	return &LivestockTransaction{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SourceFieldID:      sourceFieldID,
		TargetFieldID:      targetFieldID,
		Category:           category,
		Quantity:           qty,
		ActionType:         action,
		Date:               date,
		Notes:              notes,
	}, nil
}

// UpdateDetails changes the mutable attributes. The caller is responsible for
// reversing the old stock effect and applying the new one.
func (t *LivestockTransaction) UpdateDetails(category Category, qty int, date time.Time, notes string) error {
	if qty <= 0 {
		return shared.ErrInvalidQuantity
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown livestock category")
	}
	t.Category = category
	t.Quantity = qty
	t.Date = date
	t.Notes = notes
	t.IncrementVersion()
	return nil
}

// SetFinancials records the price detail with its already normalized USD
// amounts. Rate is nil for USD-denominated transactions.
func (t *LivestockTransaction) SetFinancials(pricePerUnit decimal.Decimal, currency valueobject.Currency,
	rate, pricePerUnitUSD *decimal.Decimal, salvageValue, salvageValueUSD *decimal.Decimal) {
	t.PricePerUnit = &pricePerUnit
	t.Currency = currency
	t.ExchangeRate = rate
	t.PricePerUnitUSD = pricePerUnitUSD
	t.SalvageValue = salvageValue
	t.SalvageValueUSD = salvageValueUSD
}

// ClearFinancials removes the price detail
func (t *LivestockTransaction) ClearFinancials() {
	t.PricePerUnit = nil
	t.Currency = ""
	t.ExchangeRate = nil
	t.PricePerUnitUSD = nil
	t.SalvageValue = nil
	t.SalvageValueUSD = nil
}

// TotalValueUSD derives the transaction's total canonical value. It is
// computed at read time and never stored.
func (t *LivestockTransaction) TotalValueUSD() *decimal.Decimal {
	if t.PricePerUnitUSD == nil {
		return nil
	}
	total := valueobject.NewMoneyUSD(*t.PricePerUnitUSD).MulInt(t.Quantity).Amount()
	return &total
}

// LinkAgendaEvent stores the id of the mirrored calendar event
func (t *LivestockTransaction) LinkAgendaEvent(eventID uuid.UUID) {
	t.AgendaEventID = &eventID
}

// AttributedFieldID resolves which field the calendar mirror should point at:
// target if present, else source, else none.
func (t *LivestockTransaction) AttributedFieldID() *uuid.UUID {
	if t.TargetFieldID != nil {
		return t.TargetFieldID
	}
	return t.SourceFieldID
}
