package persistence

import (
	"context"

	farmapp "github.com/agro/backend/internal/application/farm"
	"github.com/agro/backend/internal/domain/farm"
	"gorm.io/gorm"
)

// FarmTransactionScope runs stock-ledger work inside a single database
// transaction so the field counters, the transaction row and its history
// snapshots commit or roll back together.
type FarmTransactionScope struct {
	db *gorm.DB
}

// NewFarmTransactionScope creates a FarmTransactionScope on the given connection
func NewFarmTransactionScope(db *gorm.DB) *FarmTransactionScope {
	return &FarmTransactionScope{db: db}
}

// Execute runs fn within a database transaction. Any error rolls back every
// repository operation performed through the passed repositories.
func (s *FarmTransactionScope) Execute(ctx context.Context, fn func(repos farmapp.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories exposes the farm repositories bound to one open transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Fields() farm.FieldRepository {
	return NewGormFieldRepository(r.tx)
}

func (r *txRepositories) History() farm.LivestockHistoryRepository {
	return NewGormLivestockHistoryRepository(r.tx)
}

func (r *txRepositories) Transactions() farm.LivestockTransactionRepository {
	return NewGormLivestockTransactionRepository(r.tx)
}

func (r *txRepositories) Expenses() farm.LivestockExpenseRepository {
	return NewGormLivestockExpenseRepository(r.tx)
}

var _ farmapp.TransactionScope = (*FarmTransactionScope)(nil)
var _ farmapp.Repositories = (*txRepositories)(nil)
