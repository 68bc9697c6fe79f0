package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/partner"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRequestRepository implements partner.RequestRepository using GORM
type GormPartnerRequestRepository struct {
	db *gorm.DB
}

// NewGormPartnerRequestRepository creates a new GormPartnerRequestRepository
func NewGormPartnerRequestRepository(db *gorm.DB) *GormPartnerRequestRepository {
	return &GormPartnerRequestRepository{db: db}
}

// FindByID finds a partner request by its ID
func (r *GormPartnerRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Request, error) {
	var request partner.Request
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindBetween returns the request linking the two users in either direction
func (r *GormPartnerRequestRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*partner.Request, error) {
	var request partner.Request
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindForUser returns every request the user sent or received
func (r *GormPartnerRequestRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]partner.Request, error) {
	var requests []partner.Request
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a partner request
func (r *GormPartnerRequestRepository) Save(ctx context.Context, request *partner.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// Delete removes a partner request
func (r *GormPartnerRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Request{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.RequestRepository = (*GormPartnerRequestRepository)(nil)
