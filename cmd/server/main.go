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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/exemptledger/internal/adapter/http"
	"github.com/iho/exemptledger/internal/adapter/http/handler"
	"github.com/iho/exemptledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/exemptledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/exemptledger/internal/adapter/repository/redis"
	"github.com/iho/exemptledger/internal/infrastructure/auth"
	"github.com/iho/exemptledger/internal/infrastructure/config"
	"github.com/iho/exemptledger/internal/infrastructure/logger"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
	"github.com/iho/exemptledger/internal/infrastructure/postgres"
	"github.com/iho/exemptledger/internal/infrastructure/rates"
	"github.com/iho/exemptledger/internal/infrastructure/redis"
	"github.com/iho/exemptledger/internal/usecase"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = time.Hour
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = logg
	zerolog.DefaultContextLogger = &logg

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := migrateCommand(cfg, os.Args[2:], logg); err != nil {
			logg.Fatal().Err(err).Msg("migration failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Fatal().Err(err).Msg("server failed")
	}

	logg.Info().Msg("server stopped")
}

// migrateCommand handles "migrate up" and "migrate down" without starting
// the server.
func migrateCommand(cfg *config.Config, args []string, logg zerolog.Logger) error {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	switch direction {
	case "up":
		return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logg)
	case "down":
		return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, logg)
	default:
		return fmt.Errorf("unknown migrate direction %q (want up or down)", direction)
	}
}

func run(ctx context.Context, cfg *config.Config, logg zerolog.Logger) error {
	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		StartupWait: cfg.DatabaseStartupWait,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logg.Info().Msg("connected to postgres")

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logg); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisStartupWait)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	logg.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	profileRepo := postgresRepo.NewProfileRepository(pool)
	incomeRepo := postgresRepo.NewIncomeRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	taskRepo := postgresRepo.NewTaskRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Exchange rates
	rateSource, refresher := buildRateSource(cfg, cache, m, logg)
	if refresher != nil {
		go func() {
			if err := refresher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error().Err(err).Msg("rate refresher stopped")
			}
		}()
	}

	// Initialize use cases
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, idGen, m, logg.With().Str("component", "notifications").Logger())
	incomeUC := usecase.NewIncomeUseCase(incomeRepo, rateSource, notificationUC, retrier, idGen, usecase.IncomeConfig{
		Policy:        cfg.Policy(),
		EdgeTriggered: cfg.NotifyOnTransitionOnly,
	}, m)
	profileUC := usecase.NewProfileUseCase(txManager, profileRepo, taskRepo, idGen, notificationUC, m)
	taskUC := usecase.NewTaskUseCase(taskRepo, notificationUC, m)
	rateUC := usecase.NewRateUseCase(rateSource)
	exportUC := usecase.NewExportUseCase(incomeUC, profileRepo, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	go rateLimiter.RunCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ProfileHandler:      handler.NewProfileHandler(profileUC),
		IncomeHandler:       handler.NewIncomeHandler(incomeUC),
		ExportHandler:       handler.NewExportHandler(exportUC),
		RateHandler:         handler.NewRateHandler(rateUC),
		NotificationHandler: handler.NewNotificationHandler(notificationUC),
		TaskHandler:         handler.NewTaskHandler(taskUC),
		HealthHandler: handler.NewHealthHandler(pool, handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})),
		Authenticator:  middleware.NewAuthenticator(newJWTManager(cfg), m),
		Idempotency:    middleware.NewIdempotencyMiddleware(idempotencyStore, cfg.IdempotencyTTL),
		RateLimiter:    rateLimiter,
		MetricsHandler: promhttp.Handler(),
		Logger:         logg,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info().Str("port", cfg.HTTPPort).Bool("auth_enabled", cfg.AuthEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logg.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// buildRateSource picks the configured source. The central bank feed is
// cached in Redis and kept warm by the returned refresher.
func buildRateSource(cfg *config.Config, cache usecase.Cache, m *metrics.Metrics, logg zerolog.Logger) (usecase.RateSource, *rates.Refresher) {
	if cfg.RateSource != rates.SourceTCMB {
		return rates.NewStaticSource(), nil
	}

	rateLogger := logg.With().Str("component", "rates").Logger()
	tcmb := rates.NewTCMBSource(rates.TCMBConfig{
		URL:    cfg.RateSourceURL,
		Logger: rateLogger,
	})
	cached := rates.NewCachedSource(rates.SourceTCMB, tcmb, cache, cfg.RateCacheTTL, m, rateLogger)

	return cached, rates.NewRefresher(rates.RefresherConfig{
		Source:   cached,
		Logger:   rateLogger,
		Interval: cfg.RateRefreshInterval,
	})
}

// newJWTManager returns nil when authentication is disabled.
func newJWTManager(cfg *config.Config) *auth.JWTManager {
	if !cfg.AuthEnabled {
		return nil
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
