package farm

import (
	"context"

	"github.com/agro/backend/internal/domain/farm"
)

// TransactionScope provides transactional access to the farm repositories.
// Everything executed within one scope commits or rolls back atomically:
// stock mutations, history appends and the transaction/expense row write are
// one logical unit. Calendar mirroring is explicitly outside this boundary.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to the farm repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type Repositories interface {
	Fields() farm.FieldRepository
	History() farm.LivestockHistoryRepository
	Transactions() farm.LivestockTransactionRepository
	Expenses() farm.LivestockExpenseRepository
}

// NoOpTransactionScope runs the function without a real transaction. Useful
// for tests and for callers that bring their own atomicity.
type NoOpTransactionScope struct {
	fieldRepo       farm.FieldRepository
	historyRepo     farm.LivestockHistoryRepository
	transactionRepo farm.LivestockTransactionRepository
	expenseRepo     farm.LivestockExpenseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	fieldRepo farm.FieldRepository,
	historyRepo farm.LivestockHistoryRepository,
	transactionRepo farm.LivestockTransactionRepository,
	expenseRepo farm.LivestockExpenseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		fieldRepo:       fieldRepo,
		historyRepo:     historyRepo,
		transactionRepo: transactionRepo,
		expenseRepo:     expenseRepo,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Fields returns the field repository
func (s *NoOpTransactionScope) Fields() farm.FieldRepository {
	return s.fieldRepo
}

// History returns the livestock history repository
func (s *NoOpTransactionScope) History() farm.LivestockHistoryRepository {
	return s.historyRepo
}

// Transactions returns the livestock transaction repository
func (s *NoOpTransactionScope) Transactions() farm.LivestockTransactionRepository {
	return s.transactionRepo
}

// Expenses returns the livestock expense repository
func (s *NoOpTransactionScope) Expenses() farm.LivestockExpenseRepository {
	return s.expenseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ Repositories = (*NoOpTransactionScope)(nil)
