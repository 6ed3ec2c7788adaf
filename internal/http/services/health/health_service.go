// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/hellocrud/internal/http/dto/health"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Version    string
	Driver     string
	StoreCheck func(ctx context.Context) error // ping del adapter de storage (crítico)
	RedisCheck func(ctx context.Context) error // nil = rate limit local o deshabilitado
	Timeout    time.Duration                   // timeout por check; 0 = 2s
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) run(ctx context.Context, check func(context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()
	return check(cctx)
}

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Version:    s.deps.Version,
		Driver:     s.deps.Driver,
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}

	hasErrors := false
	hasCriticalErrors := false

	// 1) Storage (crítico)
	if s.deps.StoreCheck != nil {
		if err := s.run(ctx, s.deps.StoreCheck); err != nil {
			response.Components["store"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasCriticalErrors = true
			log.Error("store unavailable", logger.Err(err))
		} else {
			response.Components["store"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["store"] = dto.HealthStatus{
			Status:  "error",
			Message: "store not initialized",
		}
		hasCriticalErrors = true
	}

	// 2) Redis (no crítico: el rate limiter deja pasar si falla)
	if s.deps.RedisCheck != nil {
		if err := s.run(ctx, s.deps.RedisCheck); err != nil {
			response.Components["redis"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasErrors = true
			log.Warn("redis unavailable", logger.Err(err))
		} else {
			response.Components["redis"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["redis"] = dto.HealthStatus{Status: "disabled"}
	}

	switch {
	case hasCriticalErrors:
		response.Status = "unavailable"
	case hasErrors:
		response.Status = "degraded"
	default:
		response.Status = "ready"
	}

	return response
}
