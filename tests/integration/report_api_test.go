package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/parish/backend/internal/application/report"
	"github.com/parish/backend/internal/domain/report"
	"github.com/parish/backend/internal/infrastructure/cache"
	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/parish/backend/internal/infrastructure/persistence"
	"github.com/parish/backend/internal/interfaces/http/dto"
	"github.com/parish/backend/internal/interfaces/http/handler"
	"github.com/parish/backend/internal/interfaces/http/router"
	"github.com/parish/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportAPI struct {
	engine  *gin.Engine
	fixture *testutil.Fixture
}

func setupReportAPI(t *testing.T) *reportAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tdb := NewTestDB(t)
	f := testutil.NewFixture(t)
	testutil.SeedLedger(t, tdb.DB, f.Ledger)

	reportCache := cache.NewInMemoryReportCache(time.Minute)
	t.Cleanup(func() { _ = reportCache.Close() })

	service := reportapp.NewReportService(
		persistence.NewGormLedgerRepository(tdb.DB),
		reportapp.WithCache(reportCache),
		reportapp.WithLimits(reportapp.Limits{FanOutLimit: 4}),
	)
	db := &persistence.Database{DB: tdb.DB, Driver: persistence.DriverPostgres}

	engine, err := router.NewEngine(router.EngineConfig{
		Config:  &config.Config{App: config.AppConfig{Env: "test"}},
		Logger:  zap.NewNop(),
		Reports: handler.NewReportHandler(service),
		Health:  handler.NewHealthHandler(db, "integration"),
	})
	require.NoError(t, err)
	return &reportAPI{engine: engine, fixture: f}
}

func (a *reportAPI) get(t *testing.T, endpoint string, params url.Values) []byte {
	t.Helper()
	params.Set("parish_id", a.fixture.ParishID.String())
	w := testutil.Serve(a.engine, http.MethodGet, "/api/v1/reports/"+endpoint+"?"+params.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Body.Bytes()
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var resp handler.APIResponse[T]
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func february() url.Values {
	return url.Values{"start_date": {"2024-02-01"}, "end_date": {"2024-02-29"}}
}

func TestReportAPI_PostgreSQL(t *testing.T) {
	api := setupReportAPI(t)
	f := api.fixture

	t.Run("health", func(t *testing.T) {
		w := testutil.Serve(api.engine, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ledger", func(t *testing.T) {
		r := decode[report.LedgerReport](t, api.get(t, "ledger", february()))
		assert.Equal(t, "1620", r.TotalIncome.String())
		assert.Equal(t, "630", r.TotalExpense.String())
		assert.Equal(t, "990", r.Balance.String())
	})

	t.Run("cash book for every bank", func(t *testing.T) {
		params := february()
		params.Set("bank", "All")
		r := decode[report.CashBookReport](t, api.get(t, "cash-book", params))
		require.Len(t, r.Banks, 2)
		assert.Equal(t, "1500", r.TotalOpening.String())
		assert.Equal(t, "2520", r.TotalClosing.String())
	})

	t.Run("cash book for one bank", func(t *testing.T) {
		params := february()
		params.Set("bank", "sbi")
		r := decode[report.CashBookReport](t, api.get(t, "cash-book", params))
		require.Len(t, r.Banks, 1)
		assert.Equal(t, "1500", r.Banks[0].OpeningBalance.String())
		assert.Equal(t, "1300", r.Banks[0].ClosingBalance.String())
	})

	t.Run("notice board", func(t *testing.T) {
		params := february()
		params.Set("head", "Sunday Offering")
		r := decode[report.NoticeBoardReport](t, api.get(t, "notice-board", params))
		require.Len(t, r.Paid, 1)
		assert.Equal(t, "F001", r.Paid[0].FamilyNumber)
		assert.Equal(t, "V009", r.Paid[0].VoucherNumber)
		require.Len(t, r.Unpaid, 1)
		assert.Equal(t, "F002", r.Unpaid[0].FamilyNumber)
	})

	t.Run("aramana", func(t *testing.T) {
		r := decode[report.AramanaReport](t, api.get(t, "aramana", february()))
		assert.Equal(t, "100", r.TotalToBePaid.String())
		assert.Equal(t, "40", r.TotalPaid.String())
		assert.Equal(t, "60", r.TotalBalance.String())
	})

	t.Run("family dues", func(t *testing.T) {
		params := february()
		params.Set("family_id", f.Family1.ID.String())
		r := decode[report.FamilyDuesReport](t, api.get(t, "family-dues", params))
		require.Len(t, r.Heads, 1)
		assert.Equal(t, "150", r.Heads[0].OpeningBalance.String())
		assert.Equal(t, "60", r.Heads[0].ClosingBalance.String())
	})

	t.Run("pivot", func(t *testing.T) {
		r := decode[report.PivotReport](t, api.get(t, "pivot", url.Values{"fiscal_year": {"2023"}}))
		assert.Equal(t, "2120", r.GrandTotal.String())
		require.NotEmpty(t, r.Rows)
		assert.Equal(t, "Aramana Fund", r.Rows[0].HeadName)
	})

	t.Run("income against expense", func(t *testing.T) {
		r := decode[report.IncomeExpenseReport](t, api.get(t, "pivot/income-expense", url.Values{"from_year": {"2023"}, "to_year": {"2023"}}))
		require.Len(t, r.Years, 1)
		assert.Equal(t, "2120", r.Years[0].TotalIncome.String())
		assert.Equal(t, "730", r.Years[0].TotalExpense.String())
		assert.Equal(t, "1390", r.Years[0].Net.String())
	})

	t.Run("unknown bank", func(t *testing.T) {
		params := february()
		params.Set("bank", "Federal")
		params.Set("parish_id", f.ParishID.String())
		w := testutil.Serve(api.engine, http.MethodGet, "/api/v1/reports/cash-book?"+params.Encode(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		testutil.AssertErrorResponse(t, w, dto.ErrCodeNotFound)
	})
}
