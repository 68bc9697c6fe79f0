package farm

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RainfallRecord tracks millimeters of rain measured on a field on a date.
type RainfallRecord struct {
	shared.OwnedAggregateRoot
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Date     time.Time `gorm:"type:date;not null;index"`
	AmountMM float64   `gorm:"column:amount_mm;not null"`
}

// TableName returns the table name for GORM
func (RainfallRecord) TableName() string {
	return "rainfall_records"
}

// NewRainfallRecord creates a rainfall record for a field
func NewRainfallRecord(ownerID, fieldID uuid.UUID, date time.Time, amountMM float64) (*RainfallRecord, error) {
	if fieldID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FIELD", "Field ID cannot be empty")
	}
	if amountMM < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rainfall amount cannot be negative")
	}
	return &RainfallRecord{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		FieldID:            fieldID,
		Date:               date,
		AmountMM:           amountMM,
	}, nil
}
