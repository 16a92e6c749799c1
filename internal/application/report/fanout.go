package report

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/ledger"
	"github.com/parish/backend/internal/domain/report"
	"github.com/parish/backend/internal/domain/shared"
	"github.com/parish/backend/internal/infrastructure/telemetry"
	"golang.org/x/sync/errgroup"
)

// fanOut runs fn for every index of n items with at most limit in flight.
// Each call writes its own slot, so results keep the input order. The first
// error cancels the remaining calls.
func fanOut(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range n {
		g.Go(func() (err error) {
			telemetry.WithProfilingLabels(gctx, telemetry.RegionLabels("fan_out", nil), func(ctx context.Context) {
				err = fn(ctx, i)
			})
			return err
		})
	}
	return g.Wait()
}

// CashBook reports the opening and closing balance and the statement of one
// bank, or of every bank of the parish when req.Bank is "All".
func (s *ReportService) CashBook(ctx context.Context, parishID uuid.UUID, req CashBookRequest) (*report.CashBookReport, error) {
	period, err := s.period(parishID, req.PeriodRequest)
	if err != nil {
		return nil, err
	}
	c, err := ledger.ParseCustomization(req.Customization)
	if err != nil {
		return nil, err
	}
	bankName := strings.TrimSpace(req.Bank)
	if bankName == "" {
		return nil, shared.NewValidationError("bank is required")
	}
	all := strings.EqualFold(bankName, report.AllBanks)
	if all {
		bankName = report.AllBanks
	}

	key := report.CacheKey{
		ParishID:      parishID,
		Report:        report.TypeCashBook,
		Period:        periodKey(period),
		Customization: c.String(),
		Params:        []string{normalizeName(bankName)},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.CashBookReport, error) {
		banks, err := s.cashBookBanks(ctx, parishID, bankName, all)
		if err != nil {
			return nil, err
		}

		entries := make([]report.CashBookEntry, len(banks))
		err = fanOut(ctx, len(banks), s.limits.FanOutLimit, func(ctx context.Context, i int) error {
			entry, err := s.cashBookEntry(ctx, parishID, banks[i], period, c)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
		if err != nil {
			return nil, err
		}
		return report.NewCashBookReport(parishID, period, bankName, c, entries), nil
	})
}

func (s *ReportService) cashBookBanks(ctx context.Context, parishID uuid.UUID, name string, all bool) ([]ledger.Bank, error) {
	if all {
		return s.reader.FindBanks(ctx, parishID)
	}
	bank, err := s.reader.FindBankByName(ctx, parishID, name)
	if err != nil {
		return nil, err
	}
	return []ledger.Bank{*bank}, nil
}

func (s *ReportService) cashBookEntry(ctx context.Context, parishID uuid.UUID, bank ledger.Bank, period ledger.Period, c ledger.Customization) (report.CashBookEntry, error) {
	acct := ledger.Account{ParishID: parishID, BankID: &bank.ID, Orientation: ledger.AssetOrientation}

	opening, err := s.balances.Opening(ctx, acct, bank.OpeningBalance, &period.Start)
	if err != nil {
		return report.CashBookEntry{}, err
	}
	closing, err := s.balances.Closing(ctx, acct, bank.OpeningBalance, period.End)
	if err != nil {
		return report.CashBookEntry{}, err
	}
	inPeriod, err := s.reader.FindTransactions(ctx, ledger.TransactionFilter{ParishID: parishID, BankID: &bank.ID}.InPeriod(period))
	if err != nil {
		return report.CashBookEntry{}, err
	}
	return report.BuildCashBookEntry(bank, opening, closing, inPeriod, c), nil
}

// NoticeBoard splits the live families of the parish into those that paid
// towards the head during the period and those that did not.
func (s *ReportService) NoticeBoard(ctx context.Context, parishID uuid.UUID, req NoticeBoardRequest) (*report.NoticeBoardReport, error) {
	period, err := s.period(parishID, req.PeriodRequest)
	if err != nil {
		return nil, err
	}
	c, err := ledger.ParseCustomization(req.Customization)
	if err != nil {
		return nil, err
	}
	headName := strings.TrimSpace(req.Head)
	if headName == "" {
		return nil, shared.NewValidationError("head is required")
	}

	key := report.CacheKey{
		ParishID:      parishID,
		Report:        report.TypeNoticeBoard,
		Period:        periodKey(period),
		Customization: c.String(),
		Params:        []string{normalizeName(headName)},
	}
	return compute(ctx, s, key, func(ctx context.Context) (*report.NoticeBoardReport, error) {
		head, err := s.reader.FindHeadByName(ctx, parishID, headName)
		if err != nil {
			return nil, err
		}
		families, err := s.reader.FindLiveFamilies(ctx, parishID)
		if err != nil {
			return nil, err
		}

		collections := make([]report.FamilyCollection, len(families))
		err = fanOut(ctx, len(families), s.limits.FanOutLimit, func(ctx context.Context, i int) error {
			family := families[i]
			payments, err := s.reader.FindTransactions(ctx, ledger.TransactionFilter{
				ParishID: parishID,
				HeadID:   &head.ID,
				FamilyID: &family.ID,
			}.InPeriod(period))
			if err != nil {
				return err
			}
			collections[i] = report.FamilyCollection{Family: family, Payments: payments}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return report.BuildNoticeBoard(parishID, period, *head, collections, c), nil
	})
}
