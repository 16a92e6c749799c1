package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/report"
	"github.com/parish/backend/internal/domain/shared"
	"github.com/parish/backend/internal/infrastructure/logger"
	"github.com/parish/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const spanService = "report"

// Limits bound the work a single report request may cause
type Limits struct {
	MaxRangeDays  int
	MaxTrendYears int
	FanOutLimit   int
}

// DefaultLimits returns the limits used when none are configured
func DefaultLimits() Limits {
	return Limits{
		MaxRangeDays:  ledger.DefaultMaxRangeDays,
		MaxTrendYears: 10,
		FanOutLimit:   8,
	}
}

// ReportService computes the parish financial reports from the ledger.
// It holds no per-request state; every call re-reads the ledger unless a
// cached copy of the same report exists.
type ReportService struct {
	reader   ledger.Reader
	balances *ledger.BalanceCalculator
	cache    report.Cache
	metrics  *telemetry.ReportMetrics
	limits   Limits
}

// ReportServiceOption configures a ReportService
type ReportServiceOption func(*ReportService)

// WithCache stores computed reports in cache. A nil cache disables caching.
func WithCache(cache report.Cache) ReportServiceOption {
	return func(s *ReportService) {
		s.cache = cache
	}
}

// WithMetrics records report durations and outcomes.
func WithMetrics(metrics *telemetry.ReportMetrics) ReportServiceOption {
	return func(s *ReportService) {
		s.metrics = metrics
	}
}

// WithLimits overrides the default limits. Non-positive values keep the
// default.
func WithLimits(limits Limits) ReportServiceOption {
	return func(s *ReportService) {
		if limits.MaxRangeDays > 0 {
			s.limits.MaxRangeDays = limits.MaxRangeDays
		}
		if limits.MaxTrendYears > 0 {
			s.limits.MaxTrendYears = limits.MaxTrendYears
		}
		if limits.FanOutLimit > 0 {
			s.limits.FanOutLimit = limits.FanOutLimit
		}
	}
}

// NewReportService creates a new ReportService
func NewReportService(reader ledger.Reader, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		reader:   reader,
		balances: ledger.NewBalanceCalculator(reader),
		limits:   DefaultLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the effective limits
func (s *ReportService) Limits() Limits {
	return s.limits
}

// InvalidateCache drops every cached report of the parish. Callers invoke it
// after writing to the parish ledger.
func (s *ReportService) InvalidateCache(ctx context.Context, parishID uuid.UUID) error {
	if parishID == uuid.Nil {
		return shared.NewValidationError("parish_id is required")
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateParish(ctx, parishID); err != nil {
		logger.L(ctx).Error("failed to invalidate report cache", zap.String("parish_id", parishID.String()), zap.Error(err))
		return err
	}
	logger.L(ctx).Info("report cache invalidated", zap.String("parish_id", parishID.String()))
	return nil
}

func (s *ReportService) period(parishID uuid.UUID, req PeriodRequest) (ledger.Period, error) {
	if parishID == uuid.Nil {
		return ledger.Period{}, shared.NewValidationError("parish_id is required")
	}
	return ledger.NewPeriod(req.StartDate, req.EndDate, s.limits.MaxRangeDays)
}

func periodKey(p ledger.Period) string {
	return p.Start.Format(ledger.DateLayout) + ".." + p.End.Format(ledger.DateLayout)
}

// compute runs build inside a span, serving and filling the cache around it.
// Cache failures are logged and never fail the report.
func compute[T any](ctx context.Context, s *ReportService, key report.CacheKey, build func(context.Context) (*T, error)) (*T, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, key.Report,
		telemetry.SpanAttrParishID, key.ParishID.String(),
		telemetry.SpanAttrReport, key.Report,
		telemetry.SpanAttrPeriod, key.Period,
		telemetry.SpanAttrCustomization, key.Customization,
	)
	defer span.End()
	log := logger.L(ctx).With(zap.String("report", key.Report), zap.String("parish_id", key.ParishID.String()))

	if s.cache != nil {
		var hit T
		ok, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warn("report cache read failed", zap.Error(err))
		} else if ok {
			telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, true)
			s.metrics.Record(ctx, key.Report, time.Since(started), true, nil)
			log.Debug("report served from cache")
			return &hit, nil
		}
	}

	var (
		result *T
		err    error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.ReportLabels(key.Report, key.Customization), func(ctx context.Context) {
		result, err = build(ctx)
	})
	elapsed := time.Since(started)
	s.metrics.Record(ctx, key.Report, elapsed, false, err)
	if err != nil {
		telemetry.RecordError(span, err)
		if isClientError(err) {
			log.Debug("report rejected", zap.Error(err))
		} else {
			log.Error("report failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		}
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, false)
	log.Debug("report computed", zap.String("period", key.Period), zap.Duration("elapsed", elapsed))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			log.Warn("report cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func isClientError(err error) bool {
	return shared.IsValidation(err) || shared.IsNotFound(err) || errors.Is(err, context.Canceled)
}

// Ledger groups the period's entries by head.
func (s *ReportService) Ledger(ctx context.Context, parishID uuid.UUID, req LedgerRequest) (*report.LedgerReport, error) {
	period, err := s.period(parishID, req.PeriodRequest)
	if err != nil {
		return nil, err
	}
	c, err := ledger.ParseCustomization(req.Customization)
	if err != nil {
		return nil, err
	}

	key := report.CacheKey{
		ParishID:      parishID,
		Report:        report.TypeLedger,
		Period:        periodKey(period),
		Customization: c.String(),
		Params:        []string{boolParam(req.IncludeTransactions)},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.LedgerReport, error) {
		txs, err := s.reader.FindTransactions(ctx, ledger.TransactionFilter{ParishID: parishID}.InPeriod(period))
		if err != nil {
			return nil, err
		}
		return report.BuildLedger(parishID, period, txs, c, req.IncludeTransactions), nil
	})
}

// Aramana computes the diocesan share of every head marked Aramana.
func (s *ReportService) Aramana(ctx context.Context, parishID uuid.UUID, req AramanaRequest) (*report.AramanaReport, error) {
	period, err := s.period(parishID, req.PeriodRequest)
	if err != nil {
		return nil, err
	}

	c, err := ledger.ParseCustomization(req.Customization)
	if err != nil {
		return nil, err
	}

	key := report.CacheKey{
		ParishID:      parishID,
		Report:        report.TypeAramana,
		Period:        periodKey(period),
		Customization: c.String(),
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.AramanaReport, error) {
		heads, err := s.reader.FindHeadsByMarker(ctx, parishID, ledger.MarkerAramana)
		if err != nil {
			return nil, err
		}
		if len(heads) == 0 {
			return report.BuildAramana(parishID, period, nil, nil, c), nil
		}

		ids := make([]uuid.UUID, len(heads))
		for i, h := range heads {
			ids[i] = h.ID
		}
		txs, err := s.reader.FindTransactions(ctx, ledger.TransactionFilter{ParishID: parishID, HeadIDs: ids}.InPeriod(period))
		if err != nil {
			return nil, err
		}
		return report.BuildAramana(parishID, period, heads, txs, c), nil
	})
}

// FamilyDues builds the Kudishika statement of one family: per head marked
// Kudishika, dues add to and payments subtract from the carried balance.
func (s *ReportService) FamilyDues(ctx context.Context, parishID uuid.UUID, req FamilyDuesRequest) (*report.FamilyDuesReport, error) {
	period, err := s.period(parishID, req.PeriodRequest)
	if err != nil {
		return nil, err
	}
	c, err := ledger.ParseCustomization(req.Customization)
	if err != nil {
		return nil, err
	}
	familyID, err := parseID("family_id", req.FamilyID)
	if err != nil {
		return nil, err
	}

	key := report.CacheKey{
		ParishID:      parishID,
		Report:        report.TypeFamilyDues,
		Period:        periodKey(period),
		Customization: c.String(),
		Params:        []string{familyID.String()},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.FamilyDuesReport, error) {
		family, err := s.reader.FindFamilyByID(ctx, parishID, familyID)
		if err != nil {
			return nil, err
		}
		heads, err := s.reader.FindHeadsByMarker(ctx, parishID, ledger.MarkerKudishika)
		if err != nil {
			return nil, err
		}
		dues, err := s.reader.FindFamilyDues(ctx, parishID, familyID)
		if err != nil {
			return nil, err
		}
		carried := make(map[uuid.UUID]ledger.FamilyDue, len(dues))
		for _, d := range dues {
			carried[d.HeadID] = d
		}

		lines := make([]report.FamilyDueHead, 0, len(heads))
		for _, head := range heads {
			acct := ledger.Account{
				ParishID:    parishID,
				HeadID:      &head.ID,
				FamilyID:    &familyID,
				Orientation: ledger.DueOrientation,
			}
			opening, err := s.balances.Opening(ctx, acct, carried[head.ID].OpeningBalance, &period.Start)
			if err != nil {
				return nil, err
			}
			inPeriod, err := s.reader.FindTransactions(ctx, ledger.TransactionFilter{
				ParishID: parishID,
				HeadID:   &head.ID,
				FamilyID: &familyID,
			}.InPeriod(period))
			if err != nil {
				return nil, err
			}
			lines = append(lines, report.BuildFamilyDueHead(head, opening, inPeriod, c))
		}
		return report.NewFamilyDuesReport(parishID, period, c, *family, lines), nil
	})
}

func boolParam(b bool) string {
	if b {
		return "tx"
	}
	return "summary"
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
