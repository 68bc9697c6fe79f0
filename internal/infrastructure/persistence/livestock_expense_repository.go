package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLivestockExpenseRepository implements farm.LivestockExpenseRepository using GORM
type GormLivestockExpenseRepository struct {
	db *gorm.DB
}

// NewGormLivestockExpenseRepository creates a new GormLivestockExpenseRepository
func NewGormLivestockExpenseRepository(db *gorm.DB) *GormLivestockExpenseRepository {
	return &GormLivestockExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormLivestockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.LivestockExpense, error) {
	var expense farm.LivestockExpense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForOwner returns the owner's expenses, most recent first
func (r *GormLivestockExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]farm.LivestockExpense, error) {
	var expenses []farm.LivestockExpense
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormLivestockExpenseRepository) Save(ctx context.Context, expense *farm.LivestockExpense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete removes an expense
func (r *GormLivestockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.LivestockExpense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ farm.LivestockExpenseRepository = (*GormLivestockExpenseRepository)(nil)
