package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/health"
)

// RegisterHealthRoutes registra GET /readyz. Sin controller no registra nada.
func RegisterHealthRoutes(r chi.Router, c *ctrl.HealthController) {
	if c == nil {
		return
	}
	r.Method(http.MethodGet, "/readyz", http.HandlerFunc(c.Readyz))
}
