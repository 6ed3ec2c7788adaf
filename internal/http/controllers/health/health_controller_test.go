package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	svc "github.com/dropDatabas3/hellocrud/internal/http/services/health"
)

func TestReadyz(t *testing.T) {
	ready := NewHealthController(svc.NewHealthService(svc.Deps{
		Version:    "1.2.3",
		StoreCheck: func(context.Context) error { return nil },
	}))
	rec := httptest.NewRecorder()
	ready.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Header().Get("X-Service-Version"))
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	down := NewHealthController(svc.NewHealthService(svc.Deps{
		StoreCheck: func(context.Context) error { return errors.New("connection refused") },
	}))
	rec = httptest.NewRecorder()
	down.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unavailable"`)
}
