package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":                "/",
		"/":               "/",
		"/books/":         "/books",
		"/books/42":       "/books/:id",
		"/users/-3":       "/users/:id",
		"/items/abc":      "/items/abc",
		"/books/1?skip=2": "/books/:id",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePath(in), in)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := Register(Config{Registry: reg})
	require.NoError(t, err)
	_, err = Register(Config{Registry: reg})
	require.NoError(t, err)
}

func TestWithMetricsCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	handler, err := Register(Config{Registry: reg})
	require.NoError(t, err)

	h := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/7", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/books/:id",status="418"}`), body)
}
