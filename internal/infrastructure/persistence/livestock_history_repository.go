package persistence

import (
	"context"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLivestockHistoryRepository implements farm.LivestockHistoryRepository
// using GORM. The table is append-only; no update or delete path exists.
type GormLivestockHistoryRepository struct {
	db *gorm.DB
}

// NewGormLivestockHistoryRepository creates a new GormLivestockHistoryRepository
func NewGormLivestockHistoryRepository(db *gorm.DB) *GormLivestockHistoryRepository {
	return &GormLivestockHistoryRepository{db: db}
}

// Append inserts a new history snapshot
func (r *GormLivestockHistoryRepository) Append(ctx context.Context, history *farm.LivestockHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByField returns the field's snapshots in ascending date order
func (r *GormLivestockHistoryRepository) FindByField(ctx context.Context, fieldID uuid.UUID) ([]farm.LivestockHistory, error) {
	var rows []farm.LivestockHistory
	if err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindForOwner returns every snapshot of the owner's current fields in
// ascending date order. Snapshots of deleted fields drop out of the series.
func (r *GormLivestockHistoryRepository) FindForOwner(ctx context.Context, ownerID uuid.UUID) ([]farm.LivestockHistory, error) {
	var rows []farm.LivestockHistory
	if err := r.db.WithContext(ctx).
		Where("field_id IN (?)", r.db.Model(&farm.Field{}).Select("id").Where("owner_id = ?", ownerID)).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ farm.LivestockHistoryRepository = (*GormLivestockHistoryRepository)(nil)
