package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/allocator"
	httptransport "github.com/spec-kit/ticket-assignment/internal/api/http"
	"github.com/spec-kit/ticket-assignment/internal/api/http/handlers"
	"github.com/spec-kit/ticket-assignment/internal/auth"
	"github.com/spec-kit/ticket-assignment/internal/config"
	"github.com/spec-kit/ticket-assignment/internal/events"
	"github.com/spec-kit/ticket-assignment/internal/observability"
	"github.com/spec-kit/ticket-assignment/internal/persistence"
	"github.com/spec-kit/ticket-assignment/internal/priority"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	"github.com/spec-kit/ticket-assignment/internal/service"
	"github.com/spec-kit/ticket-assignment/internal/skills"
	"github.com/spec-kit/ticket-assignment/internal/validation"
	"github.com/spec-kit/ticket-assignment/internal/worker"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	agentRepo := repository.NewAgentRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	runRepo := repository.NewAssignmentRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	analyzer := priority.NewAnalyzer()
	matcher := skills.NewMatcher()

	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AgentRepo:  agentRepo,
		TicketRepo: ticketRepo,
		RunRepo:    runRepo,
		Validator:  validation.NewValidator(),
		Allocator:  allocator.New(analyzer, matcher),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	agentService := service.NewAgentService(agentRepo)
	ticketService := service.NewTicketService(ticketRepo, analyzer)
	reportService := service.NewReportService(runRepo, redis, cfg.Redis.ReportCacheTTL, logger)
	authService := service.NewAuthService(*cfg, operatorRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), operatorRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Operators:      handlers.NewOperatorsHandler(authService),
		Agents:         handlers.NewAgentsHandler(agentService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Assignments:    handlers.NewAssignmentsHandler(assignmentService, reportService, metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
