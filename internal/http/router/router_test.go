package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	healthctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/health"
	resctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/resources"
	"github.com/dropDatabas3/hellocrud/internal/http/metrics"
	mw "github.com/dropDatabas3/hellocrud/internal/http/middlewares"
	healthsvc "github.com/dropDatabas3/hellocrud/internal/http/services/health"
	ressvc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	"github.com/dropDatabas3/hellocrud/internal/rate"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/store/memory"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	users   repository.UserRepository
}

func newTestServer(t *testing.T, mutate func(*Deps)) *testServer {
	t.Helper()
	users := memory.New[repository.User]()
	services := ressvc.NewServices(ressvc.Deps{
		Books:  memory.New[repository.Book](),
		Items:  memory.New[repository.Item](),
		Users:  users,
		Hasher: password.Hasher{Params: password.Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 16}},
	})
	deps := Deps{
		Resources: resctrl.NewControllers(services, resctrl.Options{}),
		Health: healthctrl.NewHealthController(healthsvc.NewHealthService(healthsvc.Deps{
			StoreCheck: func(context.Context) error { return nil },
		})),
	}
	if mutate != nil {
		mutate(&deps)
	}
	return &testServer{t: t, handler: New(deps), users: users}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestBooksScenario(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/books/", `{"id":1,"title":"A","author":"x","published_year":2000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/books", `{"id":2,"title":"B","author":"y","published_year":2001}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodDelete, "/books/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.do(http.MethodGet, "/books/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[{"id":2,"title":"B","author":"y","published_year":2001,"description":null}]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/books/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestDuplicateAndValidation(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"id":1,"name":"pen","price":1.5,"quantity":3}`
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/items/", body).Code)

	rec := s.do(http.MethodPost, "/items/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_ID", errorCode(t, rec))

	rec = s.do(http.MethodPost, "/items/", `{"id":2,"name":"pen","price":-1,"quantity":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_FORMAT", errorCode(t, rec))

	rec = s.do(http.MethodPost, "/items/", `{"id":2`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", errorCode(t, rec))

	rec = s.do(http.MethodPost, "/items/", `{"id":3,"name":"pen","price":1,"quantity":1} {"garbage"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", errorCode(t, rec))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/items/3", "").Code)

	rec = s.do(http.MethodGet, "/items/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", errorCode(t, rec))

	rec = s.do(http.MethodGet, "/items/?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplace(t *testing.T) {
	s := newTestServer(t, nil)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/books/", `{"id":1,"title":"A","author":"x","published_year":2000}`).Code)

	rec := s.do(http.MethodPut, "/books/1", `{"title":"A2","author":"x","published_year":2000,"description":"d"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"A2","author":"x","published_year":2000,"description":"d"}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/books/1", `{"id":5,"title":"A3","author":"x","published_year":2000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID_MISMATCH", errorCode(t, rec))

	rec = s.do(http.MethodPut, "/books/9", `{"title":"Z","author":"x","published_year":2000}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersNeverExposeHash(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/register", `{"id":1,"username":"ana","email":"ana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"is_active":true`)

	stored, err := s.users.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, password.Verify("secret123", stored.HashedPassword))

	rec = s.do(http.MethodGet, "/users/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "argon2id")

	rec = s.do(http.MethodPost, "/users/", `{"id":2,"username":"bob","email":"bob@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_FORMAT", errorCode(t, rec))

	rec = s.do(http.MethodPut, "/users/1", `{"username":"ana","email":"ana@example.org","is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)

	updated, err := s.users.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, stored.HashedPassword, updated.HashedPassword)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/books/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReadyzMetricsAndRateLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	mh, err := metrics.Register(metrics.Config{Registry: reg})
	require.NoError(t, err)

	s := newTestServer(t, func(d *Deps) {
		d.MetricsHandler = mh
		d.RateLimit = mw.RateLimitConfig{Limiter: rate.NewMemoryLimiter(2, time.Minute), Limit: 2}
	})

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/books/", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/books/", "").Code)
	rec := s.do(http.MethodGet, "/books/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", errorCode(t, rec))

	// readyz y metrics están fuera del rate limit
	rec = s.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
