package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/banco-digital/banco_core/internal/account"
	"github.com/banco-digital/banco_core/internal/auth"
	"github.com/banco-digital/banco_core/internal/config"
	"github.com/banco-digital/banco_core/internal/identity"
	"github.com/banco-digital/banco_core/internal/ledger"
	"github.com/banco-digital/banco_core/internal/middleware"
	"github.com/banco-digital/banco_core/internal/notification"
	"github.com/banco-digital/banco_core/internal/throttle"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil in development, in which case in-memory backends are used.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}

	var ledgerBackend ledger.Ledger
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
	}

	var attempts throttle.Store
	if d.Cache != nil {
		attempts = throttle.NewRedisStore(d.Cache)
	} else {
		attempts = throttle.NewMemoryStore()
	}

	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo, attempts)
	notifier := notification.NewLoggerNotifier(d.Logger)
	accountSvc := account.NewService(identityRepo, ledgerBackend, notifier)

	identityHandler := identity.NewHandler(identitySvc)
	authHandler := auth.NewHandler(authSvc)
	accountHandler := account.NewHandler(accountSvc)

	api := app.Group("/api/v1")

	// Public routes
	api.Post("/identity/register", identityHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/refresh", authHandler.Refresh)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", identityHandler.Me)
	protected.Put("/me/profile", identityHandler.UpdateProfile)

	accounts := protected.Group("/accounts")
	accounts.Get("/balance", accountHandler.Balance)
	accounts.Get("/statement", accountHandler.Statement)

	// Money movement is retry-safe behind the idempotency cache.
	money := accounts.Group("")
	if d.Cache != nil {
		money.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	money.Post("/deposit", accountHandler.Deposit)
	money.Post("/withdraw", accountHandler.Withdraw)
	money.Post("/transfer", accountHandler.Transfer)

	return nil
}
