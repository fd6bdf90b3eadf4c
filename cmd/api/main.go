package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bhrigu136/shopify-ai-analytics/docs"
	"github.com/bhrigu136/shopify-ai-analytics/internal/aiservice"
	"github.com/bhrigu136/shopify-ai-analytics/internal/config"
	"github.com/bhrigu136/shopify-ai-analytics/internal/database"
	"github.com/bhrigu136/shopify-ai-analytics/internal/database/migration"
	handlers "github.com/bhrigu136/shopify-ai-analytics/internal/http/handler"
	"github.com/bhrigu136/shopify-ai-analytics/internal/http/middleware"
	"github.com/bhrigu136/shopify-ai-analytics/internal/logging"
	"github.com/bhrigu136/shopify-ai-analytics/internal/otel"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository/postgres"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository/static"
	"github.com/bhrigu136/shopify-ai-analytics/internal/service"
	"github.com/bhrigu136/shopify-ai-analytics/internal/tokencrypt"
)

const shutdownTimeout = 10 * time.Second

// @title Store Question Gateway
// @version 1.0
// @description Forwards store questions to the AI analytics service.
// @BasePath /
func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	creds, db, err := newCredentialResolver(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("credential_source", cfg.Credentials.Source).Msg("failed to initialize credential source")
	}
	if db != nil {
		defer db.Close()
	}

	questionSvc := service.NewQuestionService(creds, aiservice.New(cfg.AIService.BaseURL))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// A nil *sql.DB must not reach the Pinger interface as a typed nil.
	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	handlers.RegisterRoutes(app, pinger, questionSvc)

	if cfg.Swagger {
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}

			docs.SwaggerInfo.Host = c.Get("Host")
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", addr).
			Str("ai_service_url", cfg.AIService.BaseURL).
			Str("credential_source", cfg.Credentials.Source).
			Msg("server_starting")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	case <-ctx.Done():
		logger.Info().Msg("server_stopping")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// newCredentialResolver builds the configured token source. The returned *sql.DB is
// nil unless the source is postgres.
func newCredentialResolver(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (repository.CredentialResolver, *sql.DB, error) {
	switch cfg.Credentials.Source {
	case config.CredentialSourceStatic:
		logger.Warn().Msg("using static mock shop token; set CREDENTIAL_SOURCE=postgres for real tokens")
		return static.NewResolver(cfg.Credentials.MockToken), nil, nil

	case config.CredentialSourcePostgres:
		key, err := tokencrypt.ParseKey(cfg.Credentials.EncryptionKey)
		if err != nil {
			return nil, nil, err
		}
		cipher, err := tokencrypt.New(key)
		if err != nil {
			return nil, nil, err
		}

		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewCredentialPostgres(db, cipher), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown credential source %q", cfg.Credentials.Source)
	}
}
