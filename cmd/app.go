package main

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/caching"
	"smartrental/internal/config"
	"smartrental/internal/handlers"
	"smartrental/internal/jobs"
	"smartrental/internal/jobs/background"
	"smartrental/internal/logging"
	"smartrental/internal/middleware"
	"smartrental/internal/repositories"
	"smartrental/internal/services"
	"smartrental/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// repos groups the pgx repositories over one pool.
type repos struct {
	users         repositories.UserRepository
	houses        repositories.HouseRepository
	agreements    repositories.AgreementRepository
	payments      repositories.PaymentRepository
	relocations   repositories.RelocationRepository
	maintenance   repositories.MaintenanceRepository
	visits        repositories.VisitRepository
	notifications repositories.NotificationRepository
	auditLogs     repositories.AuditLogsRepository
}

func newRepos(pool *pgxpool.Pool) *repos {
	return &repos{
		users:         repositories.NewUserRepo(pool),
		houses:        repositories.NewHouseRepo(pool),
		agreements:    repositories.NewAgreementRepo(pool),
		payments:      repositories.NewPaymentRepo(pool),
		relocations:   repositories.NewRelocationRepo(pool),
		maintenance:   repositories.NewMaintenanceRepo(pool),
		visits:        repositories.NewVisitRepo(pool),
		notifications: repositories.NewNotificationRepo(pool),
		auditLogs:     repositories.NewAuditLogsRepo(pool),
	}
}

func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return database.NewPool(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxConns:        20,
		MaxConnLifetime: time.Hour,
		ConnectTimeout:  10 * time.Second,
	})
}

// newDispatcher publishes SMS and email to RabbitMQ when configured and
// logs them otherwise. The returned func releases the connection.
func newDispatcher(cfg *config.Config) (services.Dispatcher, func(), error) {
	if cfg.RabbitMQ.URL == "" {
		return services.NewLogDispatcher(), func() {}, nil
	}
	d, err := services.NewAMQPDispatcher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	return d, func() { _ = d.Close() }, nil
}

func newDefaulterService(cfg *config.Config, r *repos, notifier services.Notifier) services.DefaulterService {
	return services.NewDefaulterService(r.agreements, r.payments, r.users, r.houses, notifier,
		services.WithDueDay(cfg.DueDay))
}

// server holds everything routes need.
type server struct {
	cfg *config.Config

	userService  services.UserService
	auditService services.AuditLogsService
	jwt          middleware.JWTConfig

	auth          *handlers.AuthHandlers
	users         *handlers.UserHandlers
	houses        *handlers.HouseHandlers
	agreements    *handlers.AgreementHandlers
	payments      *handlers.PaymentHandlers
	relocations   *handlers.RelocationHandlers
	maintenance   *handlers.MaintenanceHandlers
	visits        *handlers.VisitHandlers
	defaulters    *handlers.DefaulterHandlers
	notifications *handlers.NotificationHandlers
	auditLogs     *handlers.AuditLogsHandlers
	health        *handlers.HealthHandlers
	jobs          *handlers.JobHandlers

	scheduler *background.JobScheduler
}

// buildServer wires repositories, services and handlers. On success the
// returned cleanup closes what buildServer opened, in reverse order.
func buildServer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*server, func(), error) {
	logger := logging.WithComponent("server")
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	r := newRepos(pool)
	cacheSvc, err := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := cacheSvc.Close(); err != nil {
			logger.Warn().Err(err).Msg("redis close failed")
		}
	})

	storage, err := services.NewMinioReceiptStore(services.MinioOptions{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.ReceiptBucket,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create minio client: %w", err)
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		// receipts still render without the archive
		logger.Warn().Err(err).Str("bucket", cfg.Minio.ReceiptBucket).Msg("receipt bucket unavailable")
	}

	dispatcher, closeDispatcher, err := newDispatcher(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeDispatcher)

	notifier := services.NewNotificationService(r.notifications, dispatcher)
	userService := services.NewUserService(r.users, cacheSvc)
	auditService := services.NewAuditLogsService(r.auditLogs)
	authService := services.NewAuthService(r.users, cacheSvc, cfg.JWTSecret,
		int(cfg.AccessTokenTTL.Seconds()), int(cfg.RefreshTokenTTL.Seconds()))
	defaulterService := newDefaulterService(cfg, r, notifier)

	jwtCfg := middleware.JWTConfig{Secret: cfg.JWTSecret}
	if cfg.JWKSURL != "" {
		keyfunc, err := middleware.NewJWKSKeyfunc(ctx, cfg.JWKSURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("load JWKS: %w", err)
		}
		jwtCfg.Keyfunc = keyfunc
	}

	scheduler, err := background.NewJobScheduler(jobs.NewReminderJob(r.users, defaulterService), cfg.ReminderCron, time.Local)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := scheduler.Stop(); err != nil {
			logger.Error().Err(err).Msg("scheduler shutdown failed")
		}
	})

	s := &server{
		cfg:           cfg,
		userService:   userService,
		auditService:  auditService,
		jwt:           jwtCfg,
		auth:          handlers.NewAuthHandlers(authService),
		users:         handlers.NewUserHandlers(userService),
		houses:        handlers.NewHouseHandlers(services.NewHouseService(r.houses, r.users)),
		agreements:    handlers.NewAgreementHandlers(services.NewAgreementService(r.agreements, r.houses, r.users)),
		payments:      handlers.NewPaymentHandlers(services.NewPaymentService(r.payments, r.agreements, r.users, r.houses, notifier, storage)),
		relocations:   handlers.NewRelocationHandlers(services.NewRelocationService(r.relocations, r.houses, r.users, notifier)),
		maintenance:   handlers.NewMaintenanceHandlers(services.NewMaintenanceService(r.maintenance, r.houses, r.users, notifier)),
		visits:        handlers.NewVisitHandlers(services.NewVisitService(r.visits, r.houses, notifier)),
		defaulters:    handlers.NewDefaulterHandlers(defaulterService),
		notifications: handlers.NewNotificationHandlers(notifier),
		auditLogs:     handlers.NewAuditLogsHandlers(auditService),
		health:        handlers.NewHealthHandlers(pool, cacheSvc, storage, Version),
		jobs:          handlers.NewJobHandlers(scheduler),
		scheduler:     scheduler,
	}
	return s, cleanup, nil
}
