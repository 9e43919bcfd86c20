package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/scolara/scolara-auth/internal/account"
	"github.com/scolara/scolara-auth/internal/auth"
	"github.com/scolara/scolara-auth/internal/config"
	"github.com/scolara/scolara-auth/internal/middleware"
	"github.com/scolara/scolara-auth/internal/notification"
	"github.com/scolara/scolara-auth/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Tokens live in Redis, so the service cannot run without it. The database
	// may be absent in dev, where an in-memory account store takes over.
	if d.Cache == nil {
		return fmt.Errorf("redis is required")
	}
	if d.DB == nil && !isDev(d.Cfg.AppEnv) {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var accountRepo account.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
	}
	notifier := notification.NewLoggerNotifier(d.Logger)
	accountSvc := account.NewService(accountRepo, notifier)
	tokenSvc := token.New(d.Cache, d.Cfg.TokenTTL)
	authHandler := auth.NewHandler(accountSvc, tokenSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler)

	// Protected routes
	protected := api.Group("", middleware.BearerAuth(tokenSvc))
	RegisterSessionRoutes(protected, authHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
