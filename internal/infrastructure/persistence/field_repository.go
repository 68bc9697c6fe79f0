package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFieldRepository implements farm.FieldRepository using GORM
type GormFieldRepository struct {
	db *gorm.DB
}

// NewGormFieldRepository creates a new GormFieldRepository
func NewGormFieldRepository(db *gorm.DB) *GormFieldRepository {
	return &GormFieldRepository{db: db}
}

// FindByID finds a field by its ID
func (r *GormFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Field, error) {
	var field farm.Field
	if err := r.db.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &field, nil
}

// FindAllForOwner returns all fields belonging to the owner, by name
func (r *GormFieldRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]farm.Field, error) {
	var fields []farm.Field
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// Create inserts a new field
func (r *GormFieldRepository) Create(ctx context.Context, field *farm.Field) error {
	return r.db.WithContext(ctx).Create(field).Error
}

// Save updates an existing field guarded by its version column. Every domain
// mutation increments the version exactly once, so the stored row must still
// be at Version-1; anything else means a concurrent writer won.
func (r *GormFieldRepository) Save(ctx context.Context, field *farm.Field) error {
	result := r.db.WithContext(ctx).
		Model(field).
		Where("id = ? AND version = ?", field.ID, field.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(field)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a field. History rows referencing it are kept.
func (r *GormFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.Field{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ farm.FieldRepository = (*GormFieldRepository)(nil)
