package farm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agro/backend/internal/application/currency"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/domain/shared/valueobject"
)

// TransactionService orchestrates livestock transactions: it applies the stock
// effect, appends history and writes the transaction row in one storage
// transaction, then mirrors the result onto the owner's agenda best-effort.
type TransactionService struct {
	scope      TransactionScope
	txRepo     farm.LivestockTransactionRepository
	fieldRepo  farm.FieldRepository
	userRepo   identity.UserRepository
	normalizer *currency.Normalizer
	mirror     *CalendarMirror
	logger     *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	scope TransactionScope,
	txRepo farm.LivestockTransactionRepository,
	fieldRepo farm.FieldRepository,
	userRepo identity.UserRepository,
	normalizer *currency.Normalizer,
	mirror *CalendarMirror,
	logger *zap.Logger,
) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{
		scope:      scope,
		txRepo:     txRepo,
		fieldRepo:  fieldRepo,
		userRepo:   userRepo,
		normalizer: normalizer,
		mirror:     mirror,
		logger:     logger,
	}
}

// CreateTransaction records a livestock event. The stock mutation, the history
// snapshots and the transaction row commit atomically; the calendar event is
// created afterwards and its failure never undoes the ledger write.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	action, err := farm.ParseActionType(req.ActionType)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ACTION", err.Error())
	}
	category, err := farm.ParseCategory(req.Category)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", err.Error())
	}

	transaction, err := farm.NewLivestockTransaction(ownerID, action, category, req.Quantity,
		req.SourceFieldID, req.TargetFieldID, req.Date, req.Notes)
	if err != nil {
		return nil, err
	}

	// Rate resolution talks to the oracle, so it happens before the storage
	// transaction opens.
	if req.PricePerUnit != nil {
		if err := s.resolveFinancials(ctx, transaction, req.PricePerUnit, req.Currency, req.ExchangeRate, req.SalvageValue); err != nil {
			return nil, err
		}
	}

	var source, target *farm.Field
	today := time.Now()
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		source, target, err = loadActionFields(ctx, repos, ownerID, transaction.SourceFieldID, transaction.TargetFieldID)
		if err != nil {
			return err
		}
		touched, err := farm.ApplyAction(action, category, req.Quantity, source, target)
		if err != nil {
			return err
		}
		if err := persistMutation(ctx, repos, touched, today); err != nil {
			return err
		}
		return repos.Transactions().Save(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	if eventID, ok := s.mirror.EventCreated(ctx, ownerID, TransactionEvent(transaction, source, target)); ok {
		transaction.LinkAgendaEvent(eventID)
		if err := s.txRepo.Save(ctx, transaction); err != nil {
			s.logger.Warn("failed to link calendar event to transaction",
				zap.String("transaction_id", transaction.ID.String()),
				zap.Error(err))
		}
	}

	resp := ToTransactionResponse(transaction, fieldNameIndex(source, target))
	return &resp, nil
}

// ListTransactions returns every transaction of the owner, newest first
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]TransactionResponse, error) {
	transactions, err := s.txRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	fields, err := s.fieldRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(fields))
	for _, f := range fields {
		names[f.ID] = f.Name
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToTransactionResponse(&transactions[i], names))
	}
	return responses, nil
}

// UpdateTransaction edits a recorded event. The old stock effect is reversed
// and the new one applied inside a single storage transaction, so either both
// happen or neither does. Action type and field references cannot change.
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	category, err := farm.ParseCategory(req.Category)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", err.Error())
	}

	// Rate resolution talks to the oracle, so it happens before the storage
	// transaction opens; a failed lookup aborts the edit before any stock or
	// history mutation commits.
	var resolution *currency.Resolution
	if req.PricePerUnit != nil {
		r, err := s.resolveRate(ctx, req.Currency, req.ExchangeRate)
		if err != nil {
			return nil, err
		}
		resolution = &r
	}

	var (
		transaction    *farm.LivestockTransaction
		source, target *farm.Field
	)
	today := time.Now()
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		transaction, err = repos.Transactions().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if !transaction.IsOwnedBy(ownerID) {
			return shared.ErrUnauthorized
		}
		source, target, err = loadActionFields(ctx, repos, ownerID, transaction.SourceFieldID, transaction.TargetFieldID)
		if err != nil {
			return err
		}

		reversed, err := farm.ReverseAction(transaction.ActionType, transaction.Category, transaction.Quantity, source, target)
		if err != nil {
			return err
		}
		if err := persistMutation(ctx, repos, reversed, today); err != nil {
			return err
		}

		if err := transaction.UpdateDetails(category, req.Quantity, req.Date, req.Notes); err != nil {
			return err
		}
		if resolution != nil {
			transaction.SetFinancials(*req.PricePerUnit, resolution.Currency, resolution.Rate,
				resolution.ToUSDPtr(req.PricePerUnit), req.SalvageValue, resolution.ToUSDPtr(req.SalvageValue))
		} else {
			transaction.ClearFinancials()
		}

		applied, err := farm.ApplyAction(transaction.ActionType, transaction.Category, transaction.Quantity, source, target)
		if err != nil {
			return err
		}
		if err := persistMutation(ctx, repos, applied, today); err != nil {
			return err
		}
		return repos.Transactions().Save(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	if transaction.AgendaEventID != nil {
		s.mirror.EventUpdated(ctx, ownerID, *transaction.AgendaEventID, TransactionEvent(transaction, source, target))
	}

	resp := ToTransactionResponse(transaction, fieldNameIndex(source, target))
	return &resp, nil
}

// DeleteTransaction reverses the stock effect and removes the row. The mirror
// event is deleted first, best-effort.
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID uuid.UUID) error {
	transaction, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if !transaction.IsOwnedBy(ownerID) {
		return shared.ErrUnauthorized
	}

	if transaction.AgendaEventID != nil {
		s.mirror.EventDeleted(ctx, ownerID, *transaction.AgendaEventID)
	}

	today := time.Now()
	return s.scope.Execute(ctx, func(repos Repositories) error {
		source, target, err := loadActionFields(ctx, repos, ownerID, transaction.SourceFieldID, transaction.TargetFieldID)
		if err != nil {
			return err
		}
		reversed, err := farm.ReverseAction(transaction.ActionType, transaction.Category, transaction.Quantity, source, target)
		if err != nil {
			return err
		}
		if err := persistMutation(ctx, repos, reversed, today); err != nil {
			return err
		}
		return repos.Transactions().Delete(ctx, transaction.ID)
	})
}

// resolveRate parses the request currency and resolves one rate for it.
func (s *TransactionService) resolveRate(ctx context.Context, currencyCode string, explicitRate *decimal.Decimal) (currency.Resolution, error) {
	cur, err := valueobject.ParseCurrency(currencyCode)
	if err != nil {
		return currency.Resolution{}, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	return s.normalizer.Resolve(ctx, cur, explicitRate)
}

// resolveFinancials normalizes the request's money amounts to USD and stores
// them on the transaction.
func (s *TransactionService) resolveFinancials(ctx context.Context, transaction *farm.LivestockTransaction,
	pricePerUnit *decimal.Decimal, currencyCode string, explicitRate, salvageValue *decimal.Decimal) error {
	resolution, err := s.resolveRate(ctx, currencyCode, explicitRate)
	if err != nil {
		return err
	}
	transaction.SetFinancials(*pricePerUnit, resolution.Currency, resolution.Rate,
		resolution.ToUSDPtr(pricePerUnit), salvageValue, resolution.ToUSDPtr(salvageValue))
	return nil
}

// loadActionFields fetches the action's fields and verifies ownership. Either
// pointer may be nil when the action does not use that side.
func loadActionFields(ctx context.Context, repos Repositories, ownerID uuid.UUID, sourceID, targetID *uuid.UUID) (*farm.Field, *farm.Field, error) {
	var source, target *farm.Field
	var err error
	if sourceID != nil {
		source, err = repos.Fields().FindByID(ctx, *sourceID)
		if err != nil {
			return nil, nil, err
		}
		if !source.IsOwnedBy(ownerID) {
			return nil, nil, shared.ErrUnauthorized
		}
	}
	if targetID != nil {
		target, err = repos.Fields().FindByID(ctx, *targetID)
		if err != nil {
			return nil, nil, err
		}
		if !target.IsOwnedBy(ownerID) {
			return nil, nil, shared.ErrUnauthorized
		}
	}
	return source, target, nil
}

// persistMutation saves each touched field and appends one history snapshot
// per field, dated with the wall clock.
func persistMutation(ctx context.Context, repos Repositories, touched []*farm.Field, date time.Time) error {
	for _, field := range touched {
		if err := repos.Fields().Save(ctx, field); err != nil {
			return err
		}
		if err := repos.History().Append(ctx, farm.SnapshotOf(field, date)); err != nil {
			return err
		}
	}
	return nil
}

func fieldNameIndex(fields ...*farm.Field) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, f := range fields {
		if f != nil {
			names[f.ID] = f.Name
		}
	}
	return names
}
