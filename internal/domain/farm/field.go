package farm

import (
	"fmt"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Field represents a parcel of land owned by a user. It is the aggregate root
// for head-count mutations: the seven per-category counters may only change
// through IncreaseCount and DecreaseCount so the non-negative invariant holds.
type Field struct {
	shared.OwnedAggregateRoot
	Name           string  `gorm:"not null"`
	Hectares       float64 `gorm:"not null"`
	Photo          string
	HasAgriculture bool
	HasLivestock   bool
	Latitude       *float64
	Longitude      *float64

	Cows         int `gorm:"not null;default:0"`
	Bulls        int `gorm:"not null;default:0"`
	Steers       int `gorm:"not null;default:0"`
	YoungSteers  int `gorm:"not null;default:0"`
	Heifers      int `gorm:"not null;default:0"`
	MaleCalves   int `gorm:"not null;default:0"`
	FemaleCalves int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Field) TableName() string {
	return "fields"
}

// NewField creates a new field for the given owner
func NewField(ownerID uuid.UUID, name string, hectares float64) (*Field, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Field name cannot be empty")
	}
	if hectares <= 0 {
		return nil, shared.NewDomainError("INVALID_HECTARES", "Hectares must be greater than 0")
	}
	return &Field{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Hectares:           hectares,
	}, nil
}

// UpdateDetails changes the descriptive attributes of the field. Head counts
// are untouched; those only move through stock actions.
func (f *Field) UpdateDetails(name string, hectares float64, photo string, hasAgriculture, hasLivestock bool, latitude, longitude *float64) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Field name cannot be empty")
	}
	if hectares <= 0 {
		return shared.NewDomainError("INVALID_HECTARES", "Hectares must be greater than 0")
	}
	f.Name = name
	f.Hectares = hectares
	f.Photo = photo
	f.HasAgriculture = hasAgriculture
	f.HasLivestock = hasLivestock
	f.Latitude = latitude
	f.Longitude = longitude
	f.IncrementVersion()
	return nil
}

// countRef maps a category to its counter column. Keeping the mapping in one
// place confines category-specific branching to this single accessor.
func (f *Field) countRef(category Category) (*int, error) {
	switch category {
	case CategoryCows:
		return &f.Cows, nil
	case CategoryBulls:
		return &f.Bulls, nil
	case CategorySteers:
		return &f.Steers, nil
	case CategoryYoungSteers:
		return &f.YoungSteers, nil
	case CategoryHeifers:
		return &f.Heifers, nil
	case CategoryMaleCalves:
		return &f.MaleCalves, nil
	case CategoryFemaleCalves:
		return &f.FemaleCalves, nil
	default:
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown livestock category: %s", category))
	}
}

// Count returns the current head count for the category
func (f *Field) Count(category Category) int {
	ref, err := f.countRef(category)
	if err != nil {
		return 0
	}
	return *ref
}

// Counts returns a snapshot of all seven head counts
func (f *Field) Counts() Counts {
	return Counts{
		Cows:         f.Cows,
		Bulls:        f.Bulls,
		Steers:       f.Steers,
		YoungSteers:  f.YoungSteers,
		Heifers:      f.Heifers,
		MaleCalves:   f.MaleCalves,
		FemaleCalves: f.FemaleCalves,
	}
}

// IncreaseCount adds amount head to the category counter. There is no upper bound.
func (f *Field) IncreaseCount(category Category, amount int) error {
	if amount <= 0 {
		return shared.ErrInvalidQuantity
	}
	ref, err := f.countRef(category)
	if err != nil {
		return err
	}
	*ref += amount
	f.IncrementVersion()
	return nil
}

// DecreaseCount removes amount head from the category counter. Fails without
// mutating when the field does not hold enough stock.
func (f *Field) DecreaseCount(category Category, amount int) error {
	if amount <= 0 {
		return shared.ErrInvalidQuantity
	}
	ref, err := f.countRef(category)
	if err != nil {
		return err
	}
	if *ref < amount {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock in field %s for category %s", f.Name, category))
	}
	*ref -= amount
	f.IncrementVersion()
	return nil
}

// TotalHead returns the sum of all seven counters
func (f *Field) TotalHead() int {
	return f.Counts().Total()
}
