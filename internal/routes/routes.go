package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/grana-app/grana/internal/auth"
	"github.com/grana-app/grana/internal/config"
	"github.com/grana-app/grana/internal/identity"
	"github.com/grana-app/grana/internal/middleware"
	"github.com/grana-app/grana/internal/notification"
	"github.com/grana-app/grana/internal/summary"
	"github.com/grana-app/grana/internal/transaction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Notifier notification.Notifier
	Logger   *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Postgres when a pool is present, memory otherwise (dev).
	var identityRepo identity.Repository
	var transactionRepo transaction.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		transactionRepo = transaction.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		transactionRepo = transaction.NewMemoryRepository()
	}

	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identitySvc)
	authHandler := auth.NewHandler(authSvc, identitySvc)
	transactionSvc := transaction.NewService(transactionRepo, notifier, d.Logger)
	transactionHandler := transaction.NewHandler(transactionSvc)
	summaryHandler := summary.NewHandler(transactionSvc, d.Logger)

	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMinute)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes. Idempotency runs after the bearer check so replayed
	// responses are always keyed to the authenticated caller.
	bearer := middleware.BearerAuth([]byte(d.Cfg.JWTSecret))
	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterTransactionRoutes(api, transactionHandler, bearer, idem)
	RegisterSummaryRoutes(api, summaryHandler, bearer)

	return nil
}
