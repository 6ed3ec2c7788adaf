package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/config"
)

func TestBuildMemoryWithSeed(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(`
books:
  - {id: 1, title: Dune, author: Frank Herbert, published_year: 1965}
items:
  - {id: 1, name: pen, price: 1.5, quantity: 10}
`), 0o600))

	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Storage.SeedFile = seed
	cfg.Rate.Enabled = true
	cfg.Rate.Backend = "memory"
	cfg.Rate.MaxRequests = 100
	cfg.Rate.Window = time.Minute

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "store_operations_total"))
}

func TestBuildRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "cassandra"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestBuildRejectsUnknownRateBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Rate.Enabled = true
	cfg.Rate.Backend = "memcached"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.Default()
	srv := NewHTTPServer(cfg, http.NotFoundHandler())
	assert.Equal(t, cfg.Server.Addr, srv.Addr)
	assert.Equal(t, cfg.Server.ReadTimeout, srv.ReadTimeout)
}
