package farm

import (
	"context"

	"github.com/google/uuid"
)

// FieldRepository persists Field aggregates. Save enforces optimistic
// locking on the version column; a stale save returns ErrConcurrencyConflict.
type FieldRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Field, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Field, error)
	Create(ctx context.Context, field *Field) error
	Save(ctx context.Context, field *Field) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LivestockHistoryRepository is append-only: snapshots are never updated or
// deleted.
type LivestockHistoryRepository interface {
	Append(ctx context.Context, history *LivestockHistory) error
	FindByField(ctx context.Context, fieldID uuid.UUID) ([]LivestockHistory, error)
	// FindForOwner returns every history row belonging to the owner's
	// fields, in ascending date order.
	FindForOwner(ctx context.Context, ownerID uuid.UUID) ([]LivestockHistory, error)
}

// LivestockTransactionRepository persists livestock transactions
type LivestockTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LivestockTransaction, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]LivestockTransaction, error)
	Save(ctx context.Context, transaction *LivestockTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LivestockExpenseRepository persists livestock expenses
type LivestockExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LivestockExpense, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]LivestockExpense, error)
	Save(ctx context.Context, expense *LivestockExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RainfallRecordRepository persists rainfall records
type RainfallRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RainfallRecord, error)
	FindByField(ctx context.Context, fieldID uuid.UUID) ([]RainfallRecord, error)
	Save(ctx context.Context, record *RainfallRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
