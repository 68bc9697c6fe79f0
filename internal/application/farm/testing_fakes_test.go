package farm

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/shared"
)

// In-memory repositories for service tests. They intentionally skip the
// optimistic locking of the real persistence layer.

type memFieldRepo struct {
	fields map[uuid.UUID]*farm.Field
}

func newMemFieldRepo(fields ...*farm.Field) *memFieldRepo {
	r := &memFieldRepo{fields: make(map[uuid.UUID]*farm.Field)}
	for _, f := range fields {
		r.fields[f.ID] = f
	}
	return r
}

func (r *memFieldRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.Field, error) {
	f, ok := r.fields[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return f, nil
}

func (r *memFieldRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID) ([]farm.Field, error) {
	var out []farm.Field
	for _, f := range r.fields {
		if f.IsOwnedBy(ownerID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memFieldRepo) Create(_ context.Context, f *farm.Field) error {
	r.fields[f.ID] = f
	return nil
}

func (r *memFieldRepo) Save(_ context.Context, f *farm.Field) error {
	r.fields[f.ID] = f
	return nil
}

func (r *memFieldRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.fields, id)
	return nil
}

type memHistoryRepo struct {
	rows []farm.LivestockHistory
}

func (r *memHistoryRepo) Append(_ context.Context, h *farm.LivestockHistory) error {
	r.rows = append(r.rows, *h)
	return nil
}

func (r *memHistoryRepo) FindByField(_ context.Context, fieldID uuid.UUID) ([]farm.LivestockHistory, error) {
	var out []farm.LivestockHistory
	for _, row := range r.rows {
		if row.FieldID == fieldID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) FindForOwner(_ context.Context, _ uuid.UUID) ([]farm.LivestockHistory, error) {
	out := make([]farm.LivestockHistory, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type memTransactionRepo struct {
	transactions map[uuid.UUID]*farm.LivestockTransaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[uuid.UUID]*farm.LivestockTransaction)}
}

func (r *memTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.LivestockTransaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *memTransactionRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID) ([]farm.LivestockTransaction, error) {
	var out []farm.LivestockTransaction
	for _, t := range r.transactions {
		if t.IsOwnedBy(ownerID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) Save(_ context.Context, t *farm.LivestockTransaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *memTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

type memExpenseRepo struct {
	expenses map[uuid.UUID]*farm.LivestockExpense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uuid.UUID]*farm.LivestockExpense)}
}

func (r *memExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.LivestockExpense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (r *memExpenseRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID) ([]farm.LivestockExpense, error) {
	var out []farm.LivestockExpense
	for _, e := range r.expenses {
		if e.IsOwnedBy(ownerID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Save(_ context.Context, e *farm.LivestockExpense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo(users ...*identity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type memRainfallRepo struct {
	records map[uuid.UUID]*farm.RainfallRecord
}

func newMemRainfallRepo() *memRainfallRepo {
	return &memRainfallRepo{records: make(map[uuid.UUID]*farm.RainfallRecord)}
}

func (r *memRainfallRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.RainfallRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *memRainfallRepo) FindByField(_ context.Context, fieldID uuid.UUID) ([]farm.RainfallRecord, error) {
	var out []farm.RainfallRecord
	for _, rec := range r.records {
		if rec.FieldID == fieldID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memRainfallRepo) Save(_ context.Context, rec *farm.RainfallRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRainfallRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

// stubGateway records mirror calls and can be told to fail
type stubGateway struct {
	fail    bool
	created []CalendarEventInput
	updated []uuid.UUID
	deleted []uuid.UUID
	nextID  uuid.UUID
}

func (g *stubGateway) CreateEvent(_ context.Context, _ uuid.UUID, input CalendarEventInput) (uuid.UUID, error) {
	if g.fail {
		return uuid.Nil, errors.New("agenda unavailable")
	}
	g.created = append(g.created, input)
	if g.nextID == uuid.Nil {
		g.nextID = uuid.New()
	}
	return g.nextID, nil
}

func (g *stubGateway) UpdateEvent(_ context.Context, _ uuid.UUID, eventID uuid.UUID, _ CalendarEventInput) error {
	if g.fail {
		return errors.New("agenda unavailable")
	}
	g.updated = append(g.updated, eventID)
	return nil
}

func (g *stubGateway) DeleteEvent(_ context.Context, _ uuid.UUID, eventID uuid.UUID) error {
	if g.fail {
		return errors.New("agenda unavailable")
	}
	g.deleted = append(g.deleted, eventID)
	return nil
}

// fixedRateProvider always returns the same rate, or an error when rate is zero
type fixedRateProvider struct {
	rate  decimal.Decimal
	calls int
}

func (p *fixedRateProvider) CurrentRate(_ context.Context) (decimal.Decimal, error) {
	p.calls++
	if p.rate.IsZero() {
		return decimal.Zero, errors.New("oracle down")
	}
	return p.rate, nil
}
