package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/parish/backend/internal/interfaces/http/dto"
	"github.com/parish/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), "1.2.3").Health)

		w := testutil.Serve(router, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := testutil.JSONResponseAs[APIResponse[HealthResponse]](t, w)
		assert.Equal(t, "ok", resp.Data.Status)
		assert.Equal(t, "1.2.3", resp.Data.Version)
		assert.NotEmpty(t, resp.Data.GoVersion)
	})

	t.Run("database down", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler(pingerFunc(func(context.Context) error { return assert.AnError }), "1.2.3").Health)

		w := testutil.Serve(router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		testutil.AssertErrorResponse(t, w, dto.ErrCodeUnavailable)
	})
}
