package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"smartrental/internal/caching"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db       Pinger
	cacheSvc caching.CacheService
	storage  services.ReceiptStore
	version  string
	started  time.Time
}

// NewHealthHandlers creates a new health handlers instance. storage may be nil.
func NewHealthHandlers(db Pinger, cacheSvc caching.CacheService, storage services.ReceiptStore, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		storage:  storage,
		version:  version,
		started:  time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports every dependency. Storage problems degrade the status
// but never fail it.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string),
		Version:    h.version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}

	checks := map[string]func(context.Context) error{
		"database": h.checkDatabase,
		"redis":    h.checkRedis,
		"storage":  h.checkStorage,
	}
	for name, check := range checks {
		if err := check(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	return c.JSON(http.StatusOK, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	return h.db.Ping(ctx)
}

func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	return h.cacheSvc.Ping(ctx)
}

func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	if h.storage == nil {
		return nil
	}
	return h.storage.Ping(ctx)
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbErr := h.checkDatabase(ctx)
	redisErr := h.checkRedis(ctx)

	if dbErr != nil || redisErr != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
