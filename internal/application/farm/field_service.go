package farm

import (
	"context"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
)

// FieldService manages fields and exposes the head-count history series.
// Head counts themselves are out of its reach: they only move through
// TransactionService.
type FieldService struct {
	fieldRepo   farm.FieldRepository
	historyRepo farm.LivestockHistoryRepository
}

// NewFieldService creates a new FieldService
func NewFieldService(fieldRepo farm.FieldRepository, historyRepo farm.LivestockHistoryRepository) *FieldService {
	return &FieldService{fieldRepo: fieldRepo, historyRepo: historyRepo}
}

// CreateField creates a field for the owner
func (s *FieldService) CreateField(ctx context.Context, ownerID uuid.UUID, req CreateFieldRequest) (*FieldResponse, error) {
	field, err := farm.NewField(ownerID, req.Name, req.Hectares)
	if err != nil {
		return nil, err
	}
	field.Photo = req.Photo
	field.HasAgriculture = req.HasAgriculture
	field.HasLivestock = req.HasLivestock
	field.Latitude = req.Latitude
	field.Longitude = req.Longitude

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, err
	}
	resp := ToFieldResponse(field)
	return &resp, nil
}

// GetField returns one field of the owner
func (s *FieldService) GetField(ctx context.Context, ownerID, fieldID uuid.UUID) (*FieldResponse, error) {
	field, err := s.ownedField(ctx, ownerID, fieldID)
	if err != nil {
		return nil, err
	}
	resp := ToFieldResponse(field)
	return &resp, nil
}

// ListFields returns every field of the owner
func (s *FieldService) ListFields(ctx context.Context, ownerID uuid.UUID) ([]FieldResponse, error) {
	fields, err := s.fieldRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]FieldResponse, 0, len(fields))
	for i := range fields {
		responses = append(responses, ToFieldResponse(&fields[i]))
	}
	return responses, nil
}

// UpdateField changes a field's descriptive attributes
func (s *FieldService) UpdateField(ctx context.Context, ownerID, fieldID uuid.UUID, req UpdateFieldRequest) (*FieldResponse, error) {
	field, err := s.ownedField(ctx, ownerID, fieldID)
	if err != nil {
		return nil, err
	}
	if err := field.UpdateDetails(req.Name, req.Hectares, req.Photo, req.HasAgriculture, req.HasLivestock, req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := s.fieldRepo.Save(ctx, field); err != nil {
		return nil, err
	}
	resp := ToFieldResponse(field)
	return &resp, nil
}

// DeleteField removes a field. Its history rows stay behind so the global
// series keeps its past contribution.
func (s *FieldService) DeleteField(ctx context.Context, ownerID, fieldID uuid.UUID) error {
	field, err := s.ownedField(ctx, ownerID, fieldID)
	if err != nil {
		return err
	}
	return s.fieldRepo.Delete(ctx, field.ID)
}

// FieldHistory returns the raw head-count snapshots of one field, oldest first
func (s *FieldService) FieldHistory(ctx context.Context, ownerID, fieldID uuid.UUID) ([]HistoryPointResponse, error) {
	if _, err := s.ownedField(ctx, ownerID, fieldID); err != nil {
		return nil, err
	}
	rows, err := s.historyRepo.FindByField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	points := make([]HistoryPointResponse, 0, len(rows))
	for i := range rows {
		points = append(points, toHistoryPointResponse(rows[i].Date, rows[i].Counts()))
	}
	return points, nil
}

// GlobalHistory reconstructs the owner's total head-count series across all
// fields, one point per distinct date.
func (s *FieldService) GlobalHistory(ctx context.Context, ownerID uuid.UUID) ([]HistoryPointResponse, error) {
	rows, err := s.historyRepo.FindForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	series := farm.AggregateHistory(rows)
	points := make([]HistoryPointResponse, 0, len(series))
	for _, p := range series {
		points = append(points, toHistoryPointResponse(p.Date, p.Counts))
	}
	return points, nil
}

func (s *FieldService) ownedField(ctx context.Context, ownerID, fieldID uuid.UUID) (*farm.Field, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if !field.IsOwnedBy(ownerID) {
		return nil, shared.ErrUnauthorized
	}
	return field, nil
}
