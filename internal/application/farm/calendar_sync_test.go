package farm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/google/uuid"
)

func TestTransactionEvent(t *testing.T) {
	ownerID := uuid.New()
	source := newTestField(t, ownerID, "Origen")
	target := newTestField(t, ownerID, "Destino")
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tx, err := farm.NewLivestockTransaction(ownerID, farm.ActionMove, farm.CategorySteers, 8,
		&source.ID, &target.ID, date, "arreo temprano")
	require.NoError(t, err)
	price := decimal.NewFromInt(320)
	tx.SetFinancials(price, "USD", nil, &price, nil, nil)

	input := TransactionEvent(tx, source, target)

	assert.Equal(t, "Movimiento: 8 Novillos", input.Title)
	assert.Equal(t, agenda.EventLivestockMove, input.EventType)
	assert.Equal(t, &target.ID, input.FieldID)
	assert.Equal(t, date, input.StartDate)
	assert.Equal(t, date.Add(23*time.Hour+59*time.Minute), input.EndDate)

	assert.Contains(t, input.Description, "Campo origen: Origen")
	assert.Contains(t, input.Description, "Campo destino: Destino")
	assert.Contains(t, input.Description, "Precio unitario: USD 320")
	assert.Contains(t, input.Description, "Notas: arreo temprano")
}

func TestTransactionEventTypeMapping(t *testing.T) {
	cases := map[farm.ActionType]agenda.EventType{
		farm.ActionPurchase: agenda.EventPurchase,
		farm.ActionSale:     agenda.EventSale,
		farm.ActionDeath:    agenda.EventHealth,
		farm.ActionBirth:    agenda.EventLivestockBirth,
		farm.ActionMove:     agenda.EventLivestockMove,
	}
	for action, want := range cases {
		assert.Equal(t, want, transactionEventType(action), "action %s", action)
	}
}

func TestTransactionEventTitles(t *testing.T) {
	ownerID := uuid.New()
	field := newTestField(t, ownerID, "Campo")
	date := time.Now()

	cases := []struct {
		action farm.ActionType
		source *uuid.UUID
		target *uuid.UUID
		want   string
	}{
		{farm.ActionPurchase, nil, &field.ID, "Compra: 3 Terneras"},
		{farm.ActionSale, &field.ID, nil, "Venta: 3 Terneras"},
		{farm.ActionDeath, &field.ID, nil, "Muerte: 3 Terneras"},
		{farm.ActionBirth, nil, &field.ID, "Nacimiento: 3 Terneras"},
	}
	for _, tc := range cases {
		tx, err := farm.NewLivestockTransaction(ownerID, tc.action, farm.CategoryFemaleCalves, 3,
			tc.source, tc.target, date, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, transactionEventTitle(tx))
	}
}

func TestExpenseEvent(t *testing.T) {
	ownerID := uuid.New()
	expense, err := farm.NewLivestockExpense(ownerID, "Vacunas", nil, time.Now(), "lote completo")
	require.NoError(t, err)
	rate := decimal.NewFromInt(1000)
	expense.SetCost(decimal.NewFromInt(150000), "ARS", &rate, decimal.NewFromInt(150))

	input := ExpenseEvent(expense)

	assert.Equal(t, "💸 Gasto: Vacunas", input.Title)
	assert.Equal(t, agenda.EventLivestockExpense, input.EventType)
	assert.Contains(t, input.Description, "Costo: ARS 150000")
	assert.Contains(t, input.Description, "Costo USD: $150")
	assert.Contains(t, input.Description, "Nota: lote completo")
}

func TestExpenseEventOmitsUSDLineForUSDCosts(t *testing.T) {
	expense, err := farm.NewLivestockExpense(uuid.New(), "Alambrado", nil, time.Now(), "")
	require.NoError(t, err)
	expense.SetCost(decimal.NewFromInt(900), "USD", nil, decimal.NewFromInt(900))

	input := ExpenseEvent(expense)
	assert.NotContains(t, input.Description, "Costo USD")
}
