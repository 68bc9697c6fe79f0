package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	agendaapp "github.com/agro/backend/internal/application/agenda"
	"github.com/agro/backend/internal/application/currency"
	farmapp "github.com/agro/backend/internal/application/farm"
	identityapp "github.com/agro/backend/internal/application/identity"
	partnerapp "github.com/agro/backend/internal/application/partner"
	"github.com/agro/backend/internal/infrastructure/auth"
	"github.com/agro/backend/internal/infrastructure/cache"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/exchange"
	"github.com/agro/backend/internal/infrastructure/logger"
	"github.com/agro/backend/internal/infrastructure/persistence"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/agro/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting agro backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogLevel(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Exchange-rate oracle behind a shared or in-process cache.
	var rateCache currency.RateCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisRateCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		rateCache = redisCache
		log.Info("Redis rate cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		rateCache = cache.NewMemoryRateCache()
	}
	rateProvider := currency.NewCachedRateProvider(
		exchange.NewDolarAPIClient(cfg.Exchange), rateCache, cfg.Exchange.CacheTTL, log)
	normalizer := currency.NewNormalizer(rateProvider)

	// Repositories.
	fieldRepo := persistence.NewGormFieldRepository(db.DB)
	historyRepo := persistence.NewGormLivestockHistoryRepository(db.DB)
	txRepo := persistence.NewGormLivestockTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormLivestockExpenseRepository(db.DB)
	rainfallRepo := persistence.NewGormRainfallRecordRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	refreshRepo := persistence.NewGormRefreshTokenRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRequestRepository(db.DB)
	scope := persistence.NewFarmTransactionScope(db.DB)

	// Application services.
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, refreshRepo, jwtService, cfg.JWT.RefreshTokenLifetime, log)
	eventService := agendaapp.NewEventService(eventRepo)
	mirror := farmapp.NewCalendarMirror(agendaapp.NewMirrorGateway(eventService), log)
	fieldService := farmapp.NewFieldService(fieldRepo, historyRepo)
	transactionService := farmapp.NewTransactionService(scope, txRepo, fieldRepo, userRepo, normalizer, mirror, log)
	expenseService := farmapp.NewExpenseService(expenseRepo, fieldRepo, normalizer, mirror, log)
	rainfallService := farmapp.NewRainfallService(rainfallRepo, fieldRepo)
	partnerService := partnerapp.NewService(partnerRepo, userRepo)

	engine := router.New(cfg, log, jwtService, router.Handlers{
		Health:      handler.NewHealthHandler(db),
		Auth:        handler.NewAuthHandler(authService),
		Field:       handler.NewFieldHandler(fieldService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Expense:     handler.NewExpenseHandler(expenseService),
		Rainfall:    handler.NewRainfallHandler(rainfallService),
		Agenda:      handler.NewAgendaHandler(eventService),
		Partner:     handler.NewPartnerHandler(partnerService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
