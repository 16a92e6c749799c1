package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("builds a json logger writing to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)
		l.Info("hello")
		require.NoError(t, l.Sync())
		assert.FileExists(t, path)
	})

	t.Run("fails on an unwritable file", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
		assert.Error(t, err)
	})

	t.Run("tees records into extra cores", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		l, err := New(&Config{Level: "debug", Format: "json", Output: "stderr"}, core)
		require.NoError(t, err)

		l.Debug("below the extra core level")
		l.Info("cash book computed", zap.String("report", "cash_book"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "cash book computed", entry.Message)
		assert.Equal(t, "cash_book", entry.ContextMap()["report"])
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithParishID(ctx, "parish-9")

	L(ctx).Info("report computed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "parish-9", fields["parish_id"])

	assert.NotPanics(t, func() { L(context.Background()).Info("dropped") })
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	engine := gin.New()
	engine.Use(func(c *gin.Context) { c.Set(RequestIDContextKey, "req-42"); c.Next() })
	engine.Use(GinMiddleware(zap.New(core)), Recovery(zap.New(core)))
	engine.GET("/ok", func(c *gin.Context) {
		assert.Equal(t, "req-42", GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	requests := logs.FilterMessage("HTTP Request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, "x=1", requests[0].ContextMap()["query"])
	assert.Equal(t, zapcore.ErrorLevel, requests[1].Level)
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 10*time.Millisecond)
	ctx := WithParishID(context.Background(), "parish-1")
	query := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, 0, logs.Len(), "fast queries are not logged at warn")

	gl.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "parish-1", logs.All()[0].ContextMap()["parish_id"])

	gl.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 1, logs.Len())

	gl.Trace(ctx, time.Now(), query, errors.New("syntax error"))
	assert.Equal(t, 1, logs.FilterMessage("ledger query failed").Len())

	gl.Trace(ctx, time.Now(), query, context.Canceled)
	cancelled := logs.FilterMessage("ledger query cancelled").All()
	require.Len(t, cancelled, 1)
	assert.Equal(t, zapcore.DebugLevel, cancelled[0].Level)

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now().Add(-time.Second), query, errors.New("ignored"))
	assert.Equal(t, 3, logs.Len())

	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel(" Silent "))
}
