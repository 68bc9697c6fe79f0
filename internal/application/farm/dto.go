package farm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agro/backend/internal/domain/farm"
)

// CreateFieldRequest represents a request to create a field
type CreateFieldRequest struct {
	Name           string   `json:"name" binding:"required"`
	Hectares       float64  `json:"hectares" binding:"required,gt=0"`
	Photo          string   `json:"photo"`
	HasAgriculture bool     `json:"has_agriculture"`
	HasLivestock   bool     `json:"has_livestock"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// UpdateFieldRequest represents a request to update a field's attributes
type UpdateFieldRequest struct {
	Name           string   `json:"name" binding:"required"`
	Hectares       float64  `json:"hectares" binding:"required,gt=0"`
	Photo          string   `json:"photo"`
	HasAgriculture bool     `json:"has_agriculture"`
	HasLivestock   bool     `json:"has_livestock"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// FieldResponse represents a field in API responses
type FieldResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Hectares       float64   `json:"hectares"`
	Photo          string    `json:"photo,omitempty"`
	HasAgriculture bool      `json:"has_agriculture"`
	HasLivestock   bool      `json:"has_livestock"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Cows           int       `json:"cows"`
	Bulls          int       `json:"bulls"`
	Steers         int       `json:"steers"`
	YoungSteers    int       `json:"young_steers"`
	Heifers        int       `json:"heifers"`
	MaleCalves     int       `json:"male_calves"`
	FemaleCalves   int       `json:"female_calves"`
	TotalHead      int       `json:"total_head"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// ToFieldResponse maps a field aggregate to its response form
func ToFieldResponse(f *farm.Field) FieldResponse {
	return FieldResponse{
		ID:             f.ID,
		Name:           f.Name,
		Hectares:       f.Hectares,
		Photo:          f.Photo,
		HasAgriculture: f.HasAgriculture,
		HasLivestock:   f.HasLivestock,
		Latitude:       f.Latitude,
		Longitude:      f.Longitude,
		Cows:           f.Cows,
		Bulls:          f.Bulls,
		Steers:         f.Steers,
		YoungSteers:    f.YoungSteers,
		Heifers:        f.Heifers,
		MaleCalves:     f.MaleCalves,
		FemaleCalves:   f.FemaleCalves,
		TotalHead:      f.TotalHead(),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
		Version:        f.Version,
	}
}

// CreateTransactionRequest represents a request to record a livestock event
type CreateTransactionRequest struct {
	ActionType    string     `json:"action_type" binding:"required"`
	Category      string     `json:"category" binding:"required"`
	Quantity      int        `json:"quantity" binding:"required,gt=0"`
	SourceFieldID *uuid.UUID `json:"source_field_id"`
	TargetFieldID *uuid.UUID `json:"target_field_id"`
	Date          time.Time  `json:"date" binding:"required"`
	Notes         string     `json:"notes"`

	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
	SalvageValue *decimal.Decimal `json:"salvage_value"`
}

// UpdateTransactionRequest represents a request to edit a livestock event.
// Action type and field references are immutable; correcting them means
// deleting the transaction and recreating it.
type UpdateTransactionRequest struct {
	Category string    `json:"category" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
	Date     time.Time `json:"date" binding:"required"`
	Notes    string    `json:"notes"`

	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
	SalvageValue *decimal.Decimal `json:"salvage_value"`
}

// TransactionResponse represents a livestock transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID        `json:"id"`
	ActionType      string           `json:"action_type"`
	Category        string           `json:"category"`
	CategoryName    string           `json:"category_name"`
	Quantity        int              `json:"quantity"`
	SourceFieldID   *uuid.UUID       `json:"source_field_id,omitempty"`
	SourceFieldName string           `json:"source_field_name,omitempty"`
	TargetFieldID   *uuid.UUID       `json:"target_field_id,omitempty"`
	TargetFieldName string           `json:"target_field_name,omitempty"`
	Date            time.Time        `json:"date"`
	Notes           string           `json:"notes,omitempty"`
	PricePerUnit    *decimal.Decimal `json:"price_per_unit,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchange_rate,omitempty"`
	PricePerUnitUSD *decimal.Decimal `json:"price_per_unit_usd,omitempty"`
	SalvageValue    *decimal.Decimal `json:"salvage_value,omitempty"`
	SalvageValueUSD *decimal.Decimal `json:"salvage_value_usd,omitempty"`
	TotalValueUSD   *decimal.Decimal `json:"total_value_usd,omitempty"`
	AgendaEventID   *uuid.UUID       `json:"agenda_event_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ToTransactionResponse maps a transaction to its response form. fieldNames
// resolves field ids to display names; unknown ids map to an empty name.
func ToTransactionResponse(t *farm.LivestockTransaction, fieldNames map[uuid.UUID]string) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID,
		ActionType:      string(t.ActionType),
		Category:        string(t.Category),
		CategoryName:    t.Category.DisplayName(),
		Quantity:        t.Quantity,
		SourceFieldID:   t.SourceFieldID,
		TargetFieldID:   t.TargetFieldID,
		Date:            t.Date,
		Notes:           t.Notes,
		PricePerUnit:    t.PricePerUnit,
		Currency:        string(t.Currency),
		ExchangeRate:    t.ExchangeRate,
		PricePerUnitUSD: t.PricePerUnitUSD,
		SalvageValue:    t.SalvageValue,
		SalvageValueUSD: t.SalvageValueUSD,
		TotalValueUSD:   t.TotalValueUSD(),
		AgendaEventID:   t.AgendaEventID,
		CreatedAt:       t.CreatedAt,
	}
	if t.SourceFieldID != nil {
		resp.SourceFieldName = fieldNames[*t.SourceFieldID]
	}
	if t.TargetFieldID != nil {
		resp.TargetFieldName = fieldNames[*t.TargetFieldID]
	}
	return resp
}

// CreateExpenseRequest represents a request to record a livestock expense
type CreateExpenseRequest struct {
	Name         string           `json:"name" binding:"required"`
	FieldID      *uuid.UUID       `json:"field_id"`
	Date         time.Time        `json:"date" binding:"required"`
	Note         string           `json:"note"`
	Cost         decimal.Decimal  `json:"cost" binding:"required"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
}

// UpdateExpenseRequest represents a request to edit a livestock expense
type UpdateExpenseRequest struct {
	Name         string           `json:"name" binding:"required"`
	FieldID      *uuid.UUID       `json:"field_id"`
	Date         time.Time        `json:"date" binding:"required"`
	Note         string           `json:"note"`
	Cost         decimal.Decimal  `json:"cost" binding:"required"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
}

// ExpenseResponse represents a livestock expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	FieldID       *uuid.UUID       `json:"field_id,omitempty"`
	FieldName     string           `json:"field_name,omitempty"`
	Date          time.Time        `json:"date"`
	Note          string           `json:"note,omitempty"`
	Cost          decimal.Decimal  `json:"cost"`
	Currency      string           `json:"currency"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate,omitempty"`
	CostUSD       decimal.Decimal  `json:"cost_usd"`
	AgendaEventID *uuid.UUID       `json:"agenda_event_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToExpenseResponse maps an expense to its response form
func ToExpenseResponse(e *farm.LivestockExpense, fieldNames map[uuid.UUID]string) ExpenseResponse {
	resp := ExpenseResponse{
		ID:            e.ID,
		Name:          e.Name,
		FieldID:       e.FieldID,
		Date:          e.Date,
		Note:          e.Note,
		Cost:          e.Cost,
		Currency:      string(e.Currency),
		ExchangeRate:  e.ExchangeRate,
		CostUSD:       e.CostUSD,
		AgendaEventID: e.AgendaEventID,
		CreatedAt:     e.CreatedAt,
	}
	if e.FieldID != nil {
		resp.FieldName = fieldNames[*e.FieldID]
	}
	return resp
}

// HistoryPointResponse is one dated point of a head-count series
type HistoryPointResponse struct {
	Date         time.Time `json:"date"`
	Cows         int       `json:"cows"`
	Bulls        int       `json:"bulls"`
	Steers       int       `json:"steers"`
	YoungSteers  int       `json:"young_steers"`
	Heifers      int       `json:"heifers"`
	MaleCalves   int       `json:"male_calves"`
	FemaleCalves int       `json:"female_calves"`
	Total        int       `json:"total"`
}

func toHistoryPointResponse(date time.Time, counts farm.Counts) HistoryPointResponse {
	return HistoryPointResponse{
		Date:         date,
		Cows:         counts.Cows,
		Bulls:        counts.Bulls,
		Steers:       counts.Steers,
		YoungSteers:  counts.YoungSteers,
		Heifers:      counts.Heifers,
		MaleCalves:   counts.MaleCalves,
		FemaleCalves: counts.FemaleCalves,
		Total:        counts.Total(),
	}
}

// CreateRainfallRequest represents a request to record rainfall on a field
type CreateRainfallRequest struct {
	FieldID  uuid.UUID `json:"field_id" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	AmountMM float64   `json:"amount_mm" binding:"required,gt=0"`
}

// RainfallResponse represents a rainfall record in API responses
type RainfallResponse struct {
	ID       uuid.UUID `json:"id"`
	FieldID  uuid.UUID `json:"field_id"`
	Date     time.Time `json:"date"`
	AmountMM float64   `json:"amount_mm"`
}

// ToRainfallResponse maps a rainfall record to its response form
func ToRainfallResponse(r *farm.RainfallRecord) RainfallResponse {
	return RainfallResponse{
		ID:       r.ID,
		FieldID:  r.FieldID,
		Date:     r.Date,
		AmountMM: r.AmountMM,
	}
}
