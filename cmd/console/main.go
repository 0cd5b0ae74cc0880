package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"burialdesk/docs"
	"burialdesk/internal/apiclient"
	"burialdesk/internal/bootstrap"
	"burialdesk/internal/config"
	"burialdesk/internal/draft"
	handlers "burialdesk/internal/http/handler"
	"burialdesk/internal/http/middleware"
	"burialdesk/internal/intake"
	"burialdesk/internal/logger"
	"burialdesk/internal/otel"
	"burialdesk/internal/report"
	"burialdesk/internal/sequencer"
	"burialdesk/internal/session"
	"burialdesk/internal/settings"
)

// bodyLimit bounds multipart submissions with several scanned documents.
const bodyLimit = 50 << 20

// @title Burial Records Console API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.ServiceName, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Local state: session token and form draft
	state, err := bootstrap.OpenState(ctx, cfg.LocalStore, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to open local state", zap.Error(err))
	}
	defer state.Close()

	sessions := session.NewStore(state)
	api := apiclient.New(cfg.API, sessions, log)

	uploader, err := bootstrap.NewUploader(cfg, api, log)
	if err != nil {
		log.Fatal("failed to initialize uploader", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}
	intakeMetrics, err := intake.NewMetrics(reg)
	if err != nil {
		log.Fatal("failed to register intake metrics", zap.Error(err))
	}

	prefs := settings.NewService(api, sessions, log)
	prefs.Reload(ctx)

	numbers := sequencer.New(api, log)
	drafts := draft.New(state, draft.Options{
		Debounce:   cfg.Draft.Debounce,
		StatusHold: cfg.Draft.StatusHold,
	}, log)
	ctrl := intake.NewController(intake.Deps{
		Records:  api,
		Numbers:  numbers,
		Drafts:   drafts,
		Settings: prefs,
		Uploader: uploader,
		Metrics:  intakeMetrics,
		Log:      log,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use("/api", middleware.RequireToken(sessions, "/api/session"))

	handlers.RegisterRoutes(app, handlers.Deps{
		State:    state,
		API:      api,
		Intake:   ctrl,
		Drafts:   drafts,
		Numbers:  numbers,
		Reports:  report.NewService(api, log),
		Settings: prefs,
		Session:  sessions,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
		if err := drafts.Flush(shutdownCtx); err != nil {
			log.Error("draft flush failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracer shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("console listening", zap.String("addr", addr), zap.String("api_base_url", cfg.API.BaseURL))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
	<-done
}
