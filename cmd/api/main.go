package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/ai"
	httptransport "github.com/spec-kit/audit-tracker/internal/api/http"
	"github.com/spec-kit/audit-tracker/internal/api/http/handlers"
	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/config"
	"github.com/spec-kit/audit-tracker/internal/events"
	"github.com/spec-kit/audit-tracker/internal/observability"
	"github.com/spec-kit/audit-tracker/internal/persistence"
	"github.com/spec-kit/audit-tracker/internal/repository"
	"github.com/spec-kit/audit-tracker/internal/service"
	"github.com/spec-kit/audit-tracker/internal/worker"
	"github.com/spec-kit/audit-tracker/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	for _, warning := range cfg.Warnings {
		logger.Warn("configuration warning", zap.String("env", cfg.App.Env), zap.String("warning", warning))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	checklistRepo := repository.NewChecklistRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.SessionSecret), auth.WithCodecLogger(logger))
	if err != nil {
		logger.Fatal("failed to init token codec", zap.Error(err))
	}
	sessionCfg := auth.SessionConfig{
		CookieName: cfg.Auth.CookieName,
		TTL:        cfg.Auth.SessionTTL(),
		Secure:     cfg.Auth.CookieSecure,
	}
	if cfg.Auth.RefetchUser {
		sessionCfg.Lookup = userRepo
	}
	sessions := auth.NewSessionManager(codec, sessionCfg, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	activityService := service.NewActivityService(activityRepo, dispatcher, logger)
	worker.StartActivityWorker(activityService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Throttle: persistence.NewLoginAttempts(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout()),
	}, logger)

	var assessor service.RiskAssessor
	aiClient, err := ai.NewClient(cfg.AI, logger)
	switch {
	case err == nil:
		assessor = aiClient
	case errors.Is(err, ai.ErrNotConfigured):
		logger.Info("risk assessment disabled: AI_ENDPOINT not set")
	default:
		logger.Fatal("failed to init ai client", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService, sessions),
		Users:      handlers.NewUsersHandler(authService),
		Dashboard:  handlers.NewDashboardHandler(service.NewDashboardService(dashboardRepo, auditRepo, activityRepo)),
		Audits:     handlers.NewAuditsHandler(service.NewAuditService(auditRepo, dispatcher, logger)),
		Checklists: handlers.NewChecklistsHandler(service.NewChecklistService(checklistRepo, dispatcher, logger)),
		Documents:  handlers.NewDocumentsHandler(service.NewDocumentService(documentRepo)),
		Reports: handlers.NewReportsHandler(service.NewReportService(service.ReportDependencies{
			ReportRepo: reportRepo,
			AuditRepo:  auditRepo,
			Dispatcher: dispatcher,
		}, logger)),
		Risk:     handlers.NewRiskHandler(service.NewRiskService(assessor, logger)),
		Sessions: sessions,
		Logger:   logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
