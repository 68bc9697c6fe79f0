package persistence

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements agenda.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*agenda.Event, error) {
	var event agenda.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindAllForOwner returns the owner's events in calendar order
func (r *GormEventRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]agenda.Event, error) {
	var events []agenda.Event
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save creates or updates an event
func (r *GormEventRepository) Save(ctx context.Context, event *agenda.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&agenda.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ agenda.EventRepository = (*GormEventRepository)(nil)
