package farm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/shared/valueobject"
)

// AgendaGateway is the calendar side of the mirror. The agenda application
// service satisfies it; tests substitute a stub.
type AgendaGateway interface {
	CreateEvent(ctx context.Context, ownerID uuid.UUID, input CalendarEventInput) (uuid.UUID, error)
	UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, input CalendarEventInput) error
	DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error
}

// CalendarEventInput carries the content of a mirror event.
type CalendarEventInput struct {
	Title       string
	Description string
	EventType   agenda.EventType
	StartDate   time.Time
	EndDate     time.Time
	FieldID     *uuid.UUID
}

// CalendarMirror keeps agenda events in sync with livestock transactions and
// expenses. Every method is best-effort: failures are logged and swallowed,
// the stock ledger never rolls back because the calendar is unavailable.
// Callers invoke it strictly after their storage transaction committed.
type CalendarMirror struct {
	gateway AgendaGateway
	logger  *zap.Logger
}

// NewCalendarMirror creates a calendar mirror
func NewCalendarMirror(gateway AgendaGateway, logger *zap.Logger) *CalendarMirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarMirror{gateway: gateway, logger: logger}
}

// EventCreated mirrors a freshly created transaction or expense. It returns
// the new event ID and false when the calendar could not be reached; the
// caller decides whether to link the ID.
func (m *CalendarMirror) EventCreated(ctx context.Context, ownerID uuid.UUID, input CalendarEventInput) (uuid.UUID, bool) {
	eventID, err := m.gateway.CreateEvent(ctx, ownerID, input)
	if err != nil {
		m.logger.Warn("failed to create calendar event",
			zap.String("owner_id", ownerID.String()),
			zap.String("title", input.Title),
			zap.Error(err))
		return uuid.Nil, false
	}
	return eventID, true
}

// EventUpdated rewrites the mirror event after an edit
func (m *CalendarMirror) EventUpdated(ctx context.Context, ownerID, eventID uuid.UUID, input CalendarEventInput) {
	if err := m.gateway.UpdateEvent(ctx, ownerID, eventID, input); err != nil {
		m.logger.Warn("failed to update calendar event",
			zap.String("owner_id", ownerID.String()),
			zap.String("event_id", eventID.String()),
			zap.Error(err))
	}
}

// EventDeleted removes the mirror event
func (m *CalendarMirror) EventDeleted(ctx context.Context, ownerID, eventID uuid.UUID) {
	if err := m.gateway.DeleteEvent(ctx, ownerID, eventID); err != nil {
		m.logger.Warn("failed to delete calendar event",
			zap.String("owner_id", ownerID.String()),
			zap.String("event_id", eventID.String()),
			zap.Error(err))
	}
}

// TransactionEvent builds the mirror event content for a livestock
// transaction. source and target may be nil when the action does not use them.
func TransactionEvent(tx *farm.LivestockTransaction, source, target *farm.Field) CalendarEventInput {
	return CalendarEventInput{
		Title:       transactionEventTitle(tx),
		Description: transactionEventDescription(tx, source, target),
		EventType:   transactionEventType(tx.ActionType),
		StartDate:   startOfDay(tx.Date),
		EndDate:     endOfDay(tx.Date),
		FieldID:     tx.AttributedFieldID(),
	}
}

// ExpenseEvent builds the mirror event content for a livestock expense
func ExpenseEvent(expense *farm.LivestockExpense) CalendarEventInput {
	return CalendarEventInput{
		Title:       "💸 Gasto: " + expense.Name,
		Description: expenseEventDescription(expense),
		EventType:   agenda.EventLivestockExpense,
		StartDate:   startOfDay(expense.Date),
		EndDate:     endOfDay(expense.Date),
		FieldID:     expense.FieldID,
	}
}

func transactionEventTitle(tx *farm.LivestockTransaction) string {
	var verb string
	switch tx.ActionType {
	case farm.ActionPurchase:
		verb = "Compra"
	case farm.ActionSale:
		verb = "Venta"
	case farm.ActionDeath:
		verb = "Muerte"
	case farm.ActionBirth:
		verb = "Nacimiento"
	case farm.ActionMove:
		verb = "Movimiento"
	default:
		verb = "Transacción"
	}
	return fmt.Sprintf("%s: %d %s", verb, tx.Quantity, tx.Category.DisplayName())
}

func transactionEventDescription(tx *farm.LivestockTransaction, source, target *farm.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transacción de ganadería: %s\n", tx.ActionType)
	fmt.Fprintf(&b, "Categoría: %s\n", tx.Category.DisplayName())
	fmt.Fprintf(&b, "Cantidad: %d\n", tx.Quantity)
	if source != nil {
		fmt.Fprintf(&b, "Campo origen: %s\n", source.Name)
	}
	if target != nil {
		fmt.Fprintf(&b, "Campo destino: %s\n", target.Name)
	}
	if tx.PricePerUnitUSD != nil {
		fmt.Fprintf(&b, "Precio unitario: USD %s\n", tx.PricePerUnitUSD.String())
	}
	if tx.Notes != "" {
		b.WriteString("Notas: " + tx.Notes)
	}
	return b.String()
}

func expenseEventDescription(expense *farm.LivestockExpense) string {
	var b strings.Builder
	b.WriteString("Gasto de ganadería\n")
	fmt.Fprintf(&b, "Costo: %s %s\n", expense.Currency, expense.Cost.String())
	if expense.Currency != valueobject.USD {
		fmt.Fprintf(&b, "Costo USD: $%s\n", expense.CostUSD.String())
	}
	if expense.Note != "" {
		b.WriteString("Nota: " + expense.Note)
	}
	return b.String()
}

func transactionEventType(action farm.ActionType) agenda.EventType {
	switch action {
	case farm.ActionPurchase:
		return agenda.EventPurchase
	case farm.ActionSale:
		return agenda.EventSale
	case farm.ActionDeath:
		return agenda.EventHealth
	case farm.ActionBirth:
		return agenda.EventLivestockBirth
	case farm.ActionMove:
		return agenda.EventLivestockMove
	default:
		return agenda.EventGeneral
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}
