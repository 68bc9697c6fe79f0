package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLivestockTransactionRepository implements farm.LivestockTransactionRepository using GORM
type GormLivestockTransactionRepository struct {
	db *gorm.DB
}

// NewGormLivestockTransactionRepository creates a new GormLivestockTransactionRepository
func NewGormLivestockTransactionRepository(db *gorm.DB) *GormLivestockTransactionRepository {
	return &GormLivestockTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormLivestockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.LivestockTransaction, error) {
	var transaction farm.LivestockTransaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAllForOwner returns the owner's transactions, most recent event first
func (r *GormLivestockTransactionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]farm.LivestockTransaction, error) {
	var transactions []farm.LivestockTransaction
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Save creates or updates a transaction
func (r *GormLivestockTransactionRepository) Save(ctx context.Context, transaction *farm.LivestockTransaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

// Delete removes a transaction
func (r *GormLivestockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&farm.LivestockTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ farm.LivestockTransactionRepository = (*GormLivestockTransactionRepository)(nil)
