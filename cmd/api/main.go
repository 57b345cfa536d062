package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-io/helpdesk-api/internal/api/http"
	"github.com/helpdesk-io/helpdesk-api/internal/api/http/handlers"
	"github.com/helpdesk-io/helpdesk-api/internal/auth"
	"github.com/helpdesk-io/helpdesk-api/internal/config"
	"github.com/helpdesk-io/helpdesk-api/internal/events"
	"github.com/helpdesk-io/helpdesk-api/internal/observability"
	"github.com/helpdesk-io/helpdesk-api/internal/persistence"
	"github.com/helpdesk-io/helpdesk-api/internal/ratelimit"
	"github.com/helpdesk-io/helpdesk-api/internal/repository"
	"github.com/helpdesk-io/helpdesk-api/internal/service"
	"github.com/helpdesk-io/helpdesk-api/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	accountService := service.NewAccountService(*cfg, accountRepo)
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	commentService := service.NewCommentService(commentRepo, ticketRepo, dispatcher)

	authMiddleware := auth.NewMiddleware(accountService.TokenManager(), accountRepo)
	authLimiter := ratelimit.NewLimiter(redis.ClientHandle(), cfg.Auth.RateLimitPerMinute, time.Minute, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(accountService, cfg.App.Env),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		AuthMiddleware: authMiddleware,
		AuthLimiter:    authLimiter,
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
