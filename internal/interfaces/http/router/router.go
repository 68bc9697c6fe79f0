package router

import (
	"github.com/agro/backend/internal/infrastructure/auth"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/logger"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Field       *handler.FieldHandler
	Transaction *handler.TransactionHandler
	Expense     *handler.ExpenseHandler
	Rainfall    *handler.RainfallHandler
	Agenda      *handler.AgendaHandler
	Partner     *handler.PartnerHandler
}

// New builds the gin engine with all middleware and routes mounted.
func New(cfg *config.Config, zapLogger *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			zapLogger.Warn("invalid trusted proxies, ignoring", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(zapLogger),
		logger.Recovery(zapLogger),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
	)

	engine.GET("/health", h.Health.Live)
	engine.GET("/ready", h.Health.Ready)

	api := engine.Group("/api/v1")

	public := api.Group("/auth")
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
		public.POST("/refresh", h.Auth.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/me", h.Auth.Me)
		protected.PUT("/auth/me", h.Auth.UpdateProfile)
		protected.PUT("/auth/password", h.Auth.ChangePassword)

		fields := protected.Group("/fields")
		{
			fields.POST("", h.Field.Create)
			fields.GET("", h.Field.List)
			fields.GET("/history", h.Field.GlobalHistory)
			fields.GET("/:id", h.Field.Get)
			fields.PUT("/:id", h.Field.Update)
			fields.DELETE("/:id", h.Field.Delete)
			fields.GET("/:id/history", h.Field.History)
			fields.GET("/:id/rainfall", h.Rainfall.ListForField)
		}

		transactions := protected.Group("/livestock/transactions")
		{
			transactions.POST("", h.Transaction.Create)
			transactions.GET("", h.Transaction.List)
			transactions.PUT("/:id", h.Transaction.Update)
			transactions.DELETE("/:id", h.Transaction.Delete)
		}

		expenses := protected.Group("/livestock/expenses")
		{
			expenses.POST("", h.Expense.Create)
			expenses.GET("", h.Expense.List)
			expenses.PUT("/:id", h.Expense.Update)
			expenses.DELETE("/:id", h.Expense.Delete)
		}

		rainfall := protected.Group("/rainfall")
		{
			rainfall.POST("", h.Rainfall.Create)
			rainfall.DELETE("/:id", h.Rainfall.Delete)
		}

		agenda := protected.Group("/agenda/events")
		{
			agenda.POST("", h.Agenda.Create)
			agenda.GET("", h.Agenda.List)
			agenda.GET("/:id", h.Agenda.Get)
			agenda.PUT("/:id", h.Agenda.Update)
			agenda.DELETE("/:id", h.Agenda.Delete)
		}

		partners := protected.Group("/partners")
		{
			partners.POST("/invitations", h.Partner.Invite)
			partners.GET("", h.Partner.List)
			partners.POST("/invitations/:id/accept", h.Partner.Accept)
			partners.DELETE("/invitations/:id", h.Partner.Decline)
		}
	}

	return engine
}
