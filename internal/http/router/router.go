// Package router arma el árbol de rutas chi y la cadena de middlewares global.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/health"
	resctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/resources"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/http/metrics"
	mw "github.com/dropDatabas3/hellocrud/internal/http/middlewares"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	// Controllers
	Resources *resctrl.Controllers
	Health    *healthctrl.HealthController

	// MetricsHandler sirve /metrics. nil = métricas deshabilitadas.
	MetricsHandler http.Handler
	MetricsPath    string // default "/metrics"

	// Middlewares opcionales
	CORSOrigins []string
	RateLimit   mw.RateLimitConfig // sin Limiter = deshabilitado
}

// New construye el handler HTTP completo.
//
// Orden de la cadena: Recover -> RequestID -> SecurityHeaders -> CORS ->
// Metrics -> RateLimit -> Logging -> rutas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	metricsPath := deps.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	RegisterHealthRoutes(r, deps.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, metricsPath, deps.MetricsHandler)
	}
	if deps.Resources != nil {
		RegisterResourceRoutes(r, deps.Resources)
	}

	var withMetrics mw.Middleware
	if deps.MetricsHandler != nil {
		withMetrics = metrics.WithMetrics
	}

	rate := deps.RateLimit
	rate.Whitelist = append(append([]string{}, rate.Whitelist...), "/readyz", metricsPath)

	return mw.Chain(r,
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(deps.CORSOrigins),
		withMetrics,
		mw.WithRateLimit(rate),
		mw.WithLogging(),
	)
}
