package report

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/report"
	"github.com/parish/backend/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// Pivot cross-tabulates one fiscal year by head and month.
func (s *ReportService) Pivot(ctx context.Context, parishID uuid.UUID, req PivotRequest) (*report.PivotReport, error) {
	if parishID == uuid.Nil {
		return nil, shared.NewValidationError("parish_id is required")
	}
	fy, err := fiscalYear("fiscal_year", req.FiscalYear)
	if err != nil {
		return nil, err
	}
	txType, err := parseType(req.Type)
	if err != nil {
		return nil, err
	}
	if req.TopN < 0 {
		return nil, shared.NewValidationError("top_n must not be negative")
	}

	key := report.CacheKey{
		ParishID: parishID,
		Report:   report.TypePivot,
		Period:   fy.Label(),
		Params:   []string{txType.String(), strconv.Itoa(req.TopN)},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.PivotReport, error) {
		totals, err := s.reader.MonthlyTotals(ctx, ledger.MonthlyTotalsFilter{
			ParishID: parishID,
			Type:     txType,
			From:     fy.Start(),
			To:       fy.End(),
		})
		if err != nil {
			return nil, err
		}
		return report.BuildPivot(parishID, fy, txType, totals, req.TopN), nil
	})
}

// HeadTrend compares one head month by month across fiscal years.
func (s *ReportService) HeadTrend(ctx context.Context, parishID uuid.UUID, req HeadTrendRequest) (*report.HeadTrendReport, error) {
	if parishID == uuid.Nil {
		return nil, shared.NewValidationError("parish_id is required")
	}
	headID, err := parseID("head_id", req.HeadID)
	if err != nil {
		return nil, err
	}
	txType, err := parseType(req.Type)
	if err != nil {
		return nil, err
	}
	from, to, err := fiscalRange(req.FromYear, req.ToYear, s.limits.MaxTrendYears)
	if err != nil {
		return nil, err
	}

	key := report.CacheKey{
		ParishID: parishID,
		Report:   report.TypeHeadTrend,
		Period:   from.Label() + ".." + to.Label(),
		Params:   []string{headID.String(), txType.String()},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.HeadTrendReport, error) {
		head, err := s.reader.FindHeadByID(ctx, parishID, headID)
		if err != nil {
			return nil, err
		}
		totals, err := s.reader.MonthlyTotals(ctx, ledger.MonthlyTotalsFilter{
			ParishID: parishID,
			Type:     txType,
			From:     from.Start(),
			To:       to.End(),
			HeadID:   &headID,
		})
		if err != nil {
			return nil, err
		}
		return report.BuildHeadTrend(parishID, *head, txType, from, to, totals), nil
	})
}

// IncomeExpense sets monthly income against monthly expense per fiscal year.
// The two series are read concurrently.
func (s *ReportService) IncomeExpense(ctx context.Context, parishID uuid.UUID, req IncomeExpenseRequest) (*report.IncomeExpenseReport, error) {
	if parishID == uuid.Nil {
		return nil, shared.NewValidationError("parish_id is required")
	}
	from, to, err := fiscalRange(req.FromYear, req.ToYear, s.limits.MaxTrendYears)
	if err != nil {
		return nil, err
	}

	key := report.CacheKey{
		ParishID: parishID,
		Report:   report.TypeIncomeExpense,
		Period:   from.Label() + ".." + to.Label(),
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.IncomeExpenseReport, error) {
		var income, expense []ledger.MonthlyTotal
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			income, err = s.reader.MonthlyTotals(gctx, ledger.MonthlyTotalsFilter{
				ParishID: parishID, Type: ledger.TransactionTypeIncome, From: from.Start(), To: to.End(),
			})
			return err
		})
		g.Go(func() error {
			var err error
			expense, err = s.reader.MonthlyTotals(gctx, ledger.MonthlyTotalsFilter{
				ParishID: parishID, Type: ledger.TransactionTypeExpense, From: from.Start(), To: to.End(),
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return report.BuildIncomeExpense(parishID, from, to, income, expense), nil
	})
}
