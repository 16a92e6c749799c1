package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(previous)
	})
	return sr
}

func findSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not found", "no span named %q", name)
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	router := okRouter(TracingWithConfig(TracingConfig{Enabled: false, ServiceName: "test-service"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracingWithConfig_Enabled(t *testing.T) {
	sr := setupTestTracer(t)
	router := okRouter(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "test-service"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	findSpan(t, sr, "GET /test")
}

func TestTracingAttributeInjector(t *testing.T) {
	sr := setupTestTracer(t)
	parishID := uuid.New()
	router := okRouter(Tracing(), RequestID(), ParishContext(), TracingAttributeInjector())

	req := httptest.NewRequest(http.MethodGet, "/test?parish_id="+parishID.String(), nil)
	req.Header.Set(RequestIDHeader, "req-abc")
	router.ServeHTTP(httptest.NewRecorder(), req)

	span := findSpan(t, sr, "GET /test")
	v, ok := spanAttr(span, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-abc", v.AsString())
	v, ok = spanAttr(span, "parish_id")
	require.True(t, ok)
	assert.Equal(t, parishID.String(), v.AsString())
}

func TestTracingAttributeInjector_WithNoSpan(t *testing.T) {
	router := okRouter(TracingAttributeInjector())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		isError bool
		message string
	}{
		{"success", http.StatusOK, false, ""},
		{"bad request", http.StatusBadRequest, true, "Client Error"},
		{"not found", http.StatusNotFound, true, "Not Found"},
		{"internal", http.StatusInternalServerError, true, "Internal Server Error"},
		{"unavailable", http.StatusServiceUnavailable, true, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := setupTestTracer(t)
			router := gin.New()
			router.Use(Tracing(), SpanErrorMarker())
			router.GET("/report", func(c *gin.Context) {
				c.Status(tt.status)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/report", nil))

			span := findSpan(t, sr, "GET /report")
			message, hasMessage := spanAttr(span, SpanAttrErrorMessage)
			if tt.isError {
				assert.Equal(t, codes.Error, span.Status().Code)
				assert.True(t, hasMessage)
				assert.Equal(t, tt.message, message.AsString())
			} else {
				assert.NotEqual(t, codes.Error, span.Status().Code)
				assert.False(t, hasMessage)
			}
		})
	}
}

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()
	assert.Equal(t, "parish-backend", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
}

func TestGetRequestID_LongHeader_Truncated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(RequestIDHeader, strings.Repeat("a", MaxRequestIDLength+50))

	assert.Len(t, getRequestID(c), MaxRequestIDLength)
}
