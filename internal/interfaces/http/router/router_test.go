package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	agendaapp "github.com/agro/backend/internal/application/agenda"
	"github.com/agro/backend/internal/application/currency"
	farmapp "github.com/agro/backend/internal/application/farm"
	identityapp "github.com/agro/backend/internal/application/identity"
	partnerapp "github.com/agro/backend/internal/application/partner"
	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/partner"
	"github.com/agro/backend/internal/infrastructure/auth"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/persistence"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type staticRateProvider struct {
	rate decimal.Decimal
}

func (p staticRateProvider) CurrentRate(_ context.Context) (decimal.Decimal, error) {
	return p.rate, nil
}

// newTestServer wires the full stack on an in-memory SQLite database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.RefreshToken{},
		&farm.Field{},
		&farm.LivestockHistory{},
		&farm.LivestockTransaction{},
		&farm.LivestockExpense{},
		&farm.RainfallRecord{},
		&agenda.Event{},
		&partner.Request{},
	))

	cfg := &config.Config{
		App: config.AppConfig{Name: "agro-backend", Env: "development"},
		JWT: config.JWTConfig{
			Secret:                "test-secret-at-least-32-characters!!",
			AccessTokenExpiration: 15 * time.Minute,
			RefreshTokenLifetime:  7 * 24 * time.Hour,
			Issuer:                "agro-backend",
		},
	}
	zapLogger := zap.NewNop()
	jwtService := auth.NewJWTService(cfg.JWT)

	fieldRepo := persistence.NewGormFieldRepository(db)
	historyRepo := persistence.NewGormLivestockHistoryRepository(db)
	txRepo := persistence.NewGormLivestockTransactionRepository(db)
	expenseRepo := persistence.NewGormLivestockExpenseRepository(db)
	rainfallRepo := persistence.NewGormRainfallRecordRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	refreshRepo := persistence.NewGormRefreshTokenRepository(db)
	eventRepo := persistence.NewGormEventRepository(db)
	partnerRepo := persistence.NewGormPartnerRequestRepository(db)
	scope := persistence.NewFarmTransactionScope(db)

	normalizer := currency.NewNormalizer(staticRateProvider{rate: decimal.NewFromInt(1000)})
	eventService := agendaapp.NewEventService(eventRepo)
	mirror := farmapp.NewCalendarMirror(agendaapp.NewMirrorGateway(eventService), zapLogger)

	handlers := Handlers{
		Health: handler.NewHealthHandler(nil),
		Auth: handler.NewAuthHandler(identityapp.NewAuthService(
			userRepo, refreshRepo, jwtService, cfg.JWT.RefreshTokenLifetime, zapLogger)),
		Field: handler.NewFieldHandler(farmapp.NewFieldService(fieldRepo, historyRepo)),
		Transaction: handler.NewTransactionHandler(farmapp.NewTransactionService(
			scope, txRepo, fieldRepo, userRepo, normalizer, mirror, zapLogger)),
		Expense: handler.NewExpenseHandler(farmapp.NewExpenseService(
			expenseRepo, fieldRepo, normalizer, mirror, zapLogger)),
		Rainfall: handler.NewRainfallHandler(farmapp.NewRainfallService(rainfallRepo, fieldRepo)),
		Agenda:   handler.NewAgendaHandler(eventService),
		Partner:  handler.NewPartnerHandler(partnerapp.NewService(partnerRepo, userRepo)),
	}

	return New(cfg, zapLogger, jwtService, handlers)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerUser(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    username + "@campo.com",
		"username": username,
		"password": "segura1234",
		"name":     "Maria",
		"lastname": "Gonzalez",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestRouter_FullLivestockFlow(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "maria")

	// Create a field.
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/fields", token, map[string]any{
		"name":     "Potrero Norte",
		"hectares": 120.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var field struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &field))

	// Purchase 10 cows priced in pesos; the static oracle rate is 1000.
	w, env = doJSON(t, engine, http.MethodPost, "/api/v1/livestock/transactions", token, map[string]any{
		"action_type":     "PURCHASE",
		"category":        "COWS",
		"quantity":        10,
		"target_field_id": field.ID,
		"date":            "2026-08-20T00:00:00Z",
		"price_per_unit":  "450000",
		"currency":        "ARS",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID              string           `json:"id"`
		PricePerUnitUSD *decimal.Decimal `json:"price_per_unit_usd"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.PricePerUnitUSD)
	assert.Equal(t, "450", created.PricePerUnitUSD.String())

	// The field now holds the stock.
	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/fields/"+field.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loaded struct {
		Cows      int `json:"cows"`
		TotalHead int `json:"total_head"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loaded))
	assert.Equal(t, 10, loaded.Cows)
	assert.Equal(t, 10, loaded.TotalHead)

	// The mirror event landed on the agenda.
	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/agenda/events", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []struct {
		Title     string `json:"title"`
		EventType string `json:"event_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Compra: 10 Vacas", events[0].Title)

	// Selling more than the stock is rejected.
	w, env = doJSON(t, engine, http.MethodPost, "/api/v1/livestock/transactions", token, map[string]any{
		"action_type":     "SALE",
		"category":        "COWS",
		"quantity":        50,
		"source_field_id": field.ID,
		"date":            "2026-08-21T00:00:00Z",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)

	// The aggregated history shows the purchase.
	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/fields/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var points []struct {
		Cows int `json:"cows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &points))
	require.NotEmpty(t, points)
	assert.Equal(t, 10, points[len(points)-1].Cows)
}

func TestRouter_AuthRequired(t *testing.T) {
	engine := newTestServer(t)

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/fields", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/fields", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RejectsUnknownCurrency(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "cambista")

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/livestock/expenses", token, map[string]any{
		"name":     "Vacuna aftosa",
		"date":     "2026-03-01T00:00:00Z",
		"cost":     "120000",
		"currency": "EUR",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	engine := newTestServer(t)
	ownerToken := registerUser(t, engine, "duena")
	strangerToken := registerUser(t, engine, "intruso")

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/fields", ownerToken, map[string]any{
		"name":     "Campo Privado",
		"hectares": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var field struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &field))

	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/fields/"+field.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	engine := newTestServer(t)

	w, _ := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PartnerFlow(t *testing.T) {
	engine := newTestServer(t)
	senderToken := registerUser(t, engine, "ana")
	_ = registerUser(t, engine, "bruno")

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/partners/invitations", senderToken, map[string]any{
		"username": "bruno",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var invite struct {
		RequestID string `json:"request_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invite))
	assert.Equal(t, "PENDING", invite.Status)

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/partners/invitations", senderToken, map[string]any{
		"username": "bruno",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
