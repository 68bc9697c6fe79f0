package farm

import (
	"context"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
)

// RainfallService records rainfall measurements per field
type RainfallService struct {
	rainfallRepo farm.RainfallRecordRepository
	fieldRepo    farm.FieldRepository
}

// NewRainfallService creates a new RainfallService
func NewRainfallService(rainfallRepo farm.RainfallRecordRepository, fieldRepo farm.FieldRepository) *RainfallService {
	return &RainfallService{rainfallRepo: rainfallRepo, fieldRepo: fieldRepo}
}

// RecordRainfall stores one measurement for a field of the owner
func (s *RainfallService) RecordRainfall(ctx context.Context, ownerID uuid.UUID, req CreateRainfallRequest) (*RainfallResponse, error) {
	if err := s.checkFieldOwnership(ctx, ownerID, req.FieldID); err != nil {
		return nil, err
	}
	record, err := farm.NewRainfallRecord(ownerID, req.FieldID, req.Date, req.AmountMM)
	if err != nil {
		return nil, err
	}
	if err := s.rainfallRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToRainfallResponse(record)
	return &resp, nil
}

// ListRainfall returns the measurements of one field, oldest first
func (s *RainfallService) ListRainfall(ctx context.Context, ownerID, fieldID uuid.UUID) ([]RainfallResponse, error) {
	if err := s.checkFieldOwnership(ctx, ownerID, fieldID); err != nil {
		return nil, err
	}
	records, err := s.rainfallRepo.FindByField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	responses := make([]RainfallResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToRainfallResponse(&records[i]))
	}
	return responses, nil
}

// DeleteRainfall removes one measurement
func (s *RainfallService) DeleteRainfall(ctx context.Context, ownerID, recordID uuid.UUID) error {
	record, err := s.rainfallRepo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if !record.IsOwnedBy(ownerID) {
		return shared.ErrUnauthorized
	}
	return s.rainfallRepo.Delete(ctx, record.ID)
}

func (s *RainfallService) checkFieldOwnership(ctx context.Context, ownerID, fieldID uuid.UUID) error {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		return err
	}
	if !field.IsOwnedBy(ownerID) {
		return shared.ErrUnauthorized
	}
	return nil
}
