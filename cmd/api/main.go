package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"rewear/internal/adapter/api"
	"rewear/internal/adapter/api/handler"
	apimiddleware "rewear/internal/adapter/api/middleware"
	"rewear/internal/adapter/api/router"
	"rewear/internal/adapter/repository"
	domainrepo "rewear/internal/domain/repository"
	"rewear/internal/infrastructure/auth"
	"rewear/internal/infrastructure/database"
	"rewear/internal/infrastructure/events"
	"rewear/internal/infrastructure/firebase"
	"rewear/internal/infrastructure/metrics"
	"rewear/internal/infrastructure/ratelimit"
	"rewear/internal/infrastructure/scheduler"
	"rewear/internal/infrastructure/security"
	"rewear/internal/usecase"
	"rewear/pkg/config"
	"rewear/pkg/logger"
	"rewear/pkg/response"
)

const serviceName = "rewear-api"

type store struct {
	users    domainrepo.UserRepository
	products domainrepo.ProductRepository
	swaps    domainrepo.SwapRequestRepository
	check    handler.StoreCheck
	close    func() error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.StoreDriver == config.StoreFirestore {
		client, err := firebase.NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &store{
			users:    repository.NewFirestoreUserRepository(client),
			products: repository.NewFirestoreProductRepository(client),
			swaps:    repository.NewFirestoreSwapRequestRepository(client),
			check: func(ctx context.Context) error {
				_, err := client.Collection("users").Limit(1).Documents(ctx).GetAll()
				return err
			},
			close: client.Close,
		}, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return &store{
		users:    repository.NewGormUserRepository(db),
		products: repository.NewGormProductRepository(db),
		swaps:    repository.NewGormSwapRequestRepository(db),
		check:    sqlDB.PingContext,
		close:    sqlDB.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: serviceName,
		Filename:    cfg.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("Failed to close store", zap.Error(err))
		}
	}()

	bus := events.NewBus()
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(serviceName)
		if err := m.Subscribe(bus); err != nil {
			log.Fatal("Failed to subscribe metrics", zap.Error(err))
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	productUseCase := usecase.NewProductUseCase(st.products, st.users, st.swaps, bus)
	userUseCase := usecase.NewUserUseCase(st.users, st.products, st.swaps, productUseCase)
	swapUseCase := usecase.NewSwapUseCase(st.swaps, st.products, st.users, userUseCase, bus)
	authUseCase := usecase.NewAuthUseCase(st.users, hasher, tokens, cfg.AdminEmails)
	queryUseCase := usecase.NewQueryUseCase(st.products)
	adminUseCase := usecase.NewAdminUseCase(st.users, st.products, st.swaps)

	handler.Setup(authUseCase, userUseCase, productUseCase, swapUseCase, queryUseCase, adminUseCase)
	handler.SetupHealthHandler(st.check)

	burst := int(cfg.AuthRateLimit * 2)
	authLimiter := ratelimit.NewRateLimiter(cfg.AuthRateLimit, burst)

	jobs := scheduler.New(5 * time.Minute)
	if err := jobs.Add(cfg.OrphanSweepSchedule, "orphan-sweep", func(ctx context.Context) error {
		_, err := swapUseCase.SweepOrphans(ctx)
		return err
	}); err != nil {
		log.Fatal("Invalid ORPHAN_SWEEP_SCHEDULE", zap.String("schedule", cfg.OrphanSweepSchedule), zap.Error(err))
	}
	if err := jobs.Add("@every 10m", "rate-limit-cleanup", func(ctx context.Context) error {
		if n := authLimiter.Cleanup(30 * time.Minute); n > 0 {
			logger.Debug("Dropped %d idle rate limit entries", n)
		}
		return nil
	}); err != nil {
		log.Fatal("Failed to schedule rate limiter cleanup", zap.Error(err))
	}
	jobs.Start()
	logger.Info("Scheduled %d background jobs, orphan sweep at %q", jobs.Entries(), cfg.OrphanSweepSchedule)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = api.NewValidator()

	e.Use(middleware.RequestID())
	var metricsHandler http.Handler
	if m != nil {
		e.Use(m.Middleware())
		metricsHandler = m.Handler()
	}
	e.Use(logger.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router.Setup(e, apimiddleware.NewAuthMiddleware(tokens), apimiddleware.NewAdminMiddleware(), authLimiter, metricsHandler)

	go func() {
		log.Info("Starting server", zap.String("port", cfg.ServerPort), zap.String("store", cfg.StoreDriver))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	jobs.Stop(shutdownCtx)
}
