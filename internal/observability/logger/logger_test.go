package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "prod", Level: "info", ServiceName: "hellocrud", Output: &buf})

	l.Debug("hidden")
	l.Info("record created", Resource("books"), RecordID(7), Err(nil))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "record created", entry["msg"])
	assert.Equal(t, "books", entry["resource"])
	assert.Equal(t, float64(7), entry["record_id"])
	assert.Equal(t, "hellocrud", entry["service"])
	assert.NotContains(t, entry, "error")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	scoped := New(Config{Env: "prod", Output: &buf}).With(RequestID("req-1"))

	ctx := ToContext(context.Background(), scoped)
	From(ctx).Warn("scoped", Err(errors.New("boom")))

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestFromFallsBackToSingleton(t *testing.T) {
	nop := zap.NewNop()
	restore := Replace(nop)
	defer restore()

	assert.Same(t, nop, From(context.Background()))
	assert.Same(t, nop, L())
}

func TestSNamedUsesSingleton(t *testing.T) {
	var buf bytes.Buffer
	restore := Replace(New(Config{Env: "prod", Level: "info", Output: &buf}))
	defer restore()

	SNamed("seed").Infof("inserted=%d skipped=%d", 3, 1)
	require.NoError(t, S().Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inserted=3 skipped=1", entry["msg"])
	assert.Equal(t, "seed", entry["logger"])
}
