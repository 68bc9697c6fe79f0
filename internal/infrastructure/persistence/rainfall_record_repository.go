package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRainfallRecordRepository implements farm.RainfallRecordRepository using GORM
type GormRainfallRecordRepository struct {
	db *gorm.DB
}

// NewGormRainfallRecordRepository creates a new GormRainfallRecordRepository
func NewGormRainfallRecordRepository(db *gorm.DB) *GormRainfallRecordRepository {
	return &GormRainfallRecordRepository{db: db}
}

// FindByID finds a rainfall record by its ID
func (r *GormRainfallRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.RainfallRecord, error) {
	var record farm.RainfallRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByField returns the field's rainfall records, most recent first
func (r *GormRainfallRecordRepository) FindByField(ctx context.Context, fieldID uuid.UUID) ([]farm.RainfallRecord, error) {
	var records []farm.RainfallRecord
	if err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a rainfall record
func (r *GormRainfallRecordRepository) Save(ctx context.Context, record *farm.RainfallRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a rainfall record
func (r *GormRainfallRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.RainfallRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ farm.RainfallRecordRepository = (*GormRainfallRecordRepository)(nil)
