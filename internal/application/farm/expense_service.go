package farm

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agro/backend/internal/application/currency"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/domain/shared/valueobject"
)

// ExpenseService manages livestock expenses. Expenses carry the same currency
// normalization and calendar mirroring as transactions but never move stock.
type ExpenseService struct {
	expenseRepo farm.LivestockExpenseRepository
	fieldRepo   farm.FieldRepository
	normalizer  *currency.Normalizer
	mirror      *CalendarMirror
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo farm.LivestockExpenseRepository,
	fieldRepo farm.FieldRepository,
	normalizer *currency.Normalizer,
	mirror *CalendarMirror,
	logger *zap.Logger,
) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		fieldRepo:   fieldRepo,
		normalizer:  normalizer,
		mirror:      mirror,
		logger:      logger,
	}
}

// CreateExpense records an expense and mirrors it onto the agenda
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.checkFieldOwnership(ctx, ownerID, req.FieldID); err != nil {
		return nil, err
	}

	expense, err := farm.NewLivestockExpense(ownerID, req.Name, req.FieldID, req.Date, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.resolveCost(ctx, expense, req.Cost, req.Currency, req.ExchangeRate); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	if eventID, ok := s.mirror.EventCreated(ctx, ownerID, ExpenseEvent(expense)); ok {
		expense.LinkAgendaEvent(eventID)
		if err := s.expenseRepo.Save(ctx, expense); err != nil {
			s.logger.Warn("failed to link calendar event to expense",
				zap.String("expense_id", expense.ID.String()),
				zap.Error(err))
		}
	}

	resp := ToExpenseResponse(expense, s.fieldNames(ctx, ownerID))
	return &resp, nil
}

// ListExpenses returns every expense of the owner
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := s.fieldNames(ctx, ownerID)
	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, ToExpenseResponse(&expenses[i], names))
	}
	return responses, nil
}

// UpdateExpense edits an expense and rewrites its mirror event
func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsOwnedBy(ownerID) {
		return nil, shared.ErrUnauthorized
	}
	if err := s.checkFieldOwnership(ctx, ownerID, req.FieldID); err != nil {
		return nil, err
	}

	if err := expense.UpdateDetails(req.Name, req.FieldID, req.Date, req.Note); err != nil {
		return nil, err
	}
	if err := s.resolveCost(ctx, expense, req.Cost, req.Currency, req.ExchangeRate); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	if expense.AgendaEventID != nil {
		s.mirror.EventUpdated(ctx, ownerID, *expense.AgendaEventID, ExpenseEvent(expense))
	}

	resp := ToExpenseResponse(expense, s.fieldNames(ctx, ownerID))
	return &resp, nil
}

// DeleteExpense removes an expense and its mirror event
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !expense.IsOwnedBy(ownerID) {
		return shared.ErrUnauthorized
	}

	if expense.AgendaEventID != nil {
		s.mirror.EventDeleted(ctx, ownerID, *expense.AgendaEventID)
	}
	return s.expenseRepo.Delete(ctx, expense.ID)
}

func (s *ExpenseService) resolveCost(ctx context.Context, expense *farm.LivestockExpense,
	cost decimal.Decimal, currencyCode string, explicitRate *decimal.Decimal) error {
	cur, err := valueobject.ParseCurrency(currencyCode)
	if err != nil {
		return shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	resolution, err := s.normalizer.Resolve(ctx, cur, explicitRate)
	if err != nil {
		return err
	}
	expense.SetCost(cost, resolution.Currency, resolution.Rate, resolution.ToUSD(cost))
	return nil
}

// checkFieldOwnership rejects attributing an expense to someone else's field
func (s *ExpenseService) checkFieldOwnership(ctx context.Context, ownerID uuid.UUID, fieldID *uuid.UUID) error {
	if fieldID == nil {
		return nil
	}
	field, err := s.fieldRepo.FindByID(ctx, *fieldID)
	if err != nil {
		return err
	}
	if !field.IsOwnedBy(ownerID) {
		return shared.ErrUnauthorized
	}
	return nil
}

func (s *ExpenseService) fieldNames(ctx context.Context, ownerID uuid.UUID) map[uuid.UUID]string {
	fields, err := s.fieldRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("failed to resolve field names", zap.Error(err))
		return nil
	}
	names := make(map[uuid.UUID]string, len(fields))
	for _, f := range fields {
		names[f.ID] = f.Name
	}
	return names
}
