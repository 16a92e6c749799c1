package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	reportapp "github.com/parish/backend/internal/application/report"
	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/parish/backend/internal/interfaces/http/dto"
	"github.com/parish/backend/internal/interfaces/http/handler"
	"github.com/parish/backend/internal/interfaces/http/middleware"
	"github.com/parish/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var order []string
	r.Use(func(c *gin.Context) { order = append(order, "api"); c.Next() })

	group := NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) { order = append(order, "group"); c.Next() }).
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }).
		POST("/echo", func(c *gin.Context) { c.String(http.StatusCreated, "echo") })
	r.Register(group)
	r.Setup()

	w := testutil.Serve(engine, http.MethodGet, "/api/v1/test/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"api", "group"}, order)

	w = testutil.Serve(engine, http.MethodPost, "/api/v1/test/echo", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutil.Serve(engine, http.MethodGet, "/test/ping", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup_Accessors(t *testing.T) {
	dg := NewDomainGroup("report", "/reports")
	assert.Equal(t, "report", dg.Name())
	assert.Equal(t, "/reports", dg.Prefix())
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestEngine(t *testing.T, swaggerEnabled bool) (*gin.Engine, *testutil.Fixture) {
	t.Helper()

	f := testutil.NewFixture(t)
	cfg := &config.Config{
		App:     config.AppConfig{Env: "test"},
		Swagger: config.SwaggerConfig{Enabled: swaggerEnabled},
	}
	engine, err := NewEngine(EngineConfig{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Reports: handler.NewReportHandler(reportapp.NewReportService(f.Ledger)),
		Health:  handler.NewHealthHandler(okPinger{}, "test"),
	})
	require.NoError(t, err)
	return engine, f
}

func TestNewEngine_Routes(t *testing.T) {
	engine, f := newTestEngine(t, false)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /swagger/*any",
		"GET /api/v1/reports/ledger",
		"GET /api/v1/reports/cash-book",
		"GET /api/v1/reports/notice-board",
		"GET /api/v1/reports/aramana",
		"GET /api/v1/reports/family-dues",
		"GET /api/v1/reports/pivot",
		"GET /api/v1/reports/pivot/head-trend",
		"GET /api/v1/reports/pivot/income-expense",
		"POST /api/v1/reports/cache/invalidate",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	w := testutil.Serve(engine, http.MethodGet,
		"/api/v1/reports/aramana?start_date=2024-02-01&end_date=2024-02-29&parish_id="+f.ParishID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	testutil.AssertSuccessResponse(t, w)
}

func TestNewEngine_Health(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := testutil.Serve(engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	testutil.AssertSuccessResponse(t, w)
}

func TestNewEngine_SwaggerDisabled(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := testutil.Serve(engine, http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeNotFound)
}

func TestNewEngine_MissingParish(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/ledger", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
}
