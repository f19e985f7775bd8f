package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Service coordinates report loading: repository reads behind the versioned
// cache, with concurrent loads for the same key collapsed to one.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService constructs a Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Bump invalidates every cached report payload.
func (s *Service) Bump(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// Invalidate drops one query's cached payload so the next read refetches.
func (s *Service) Invalidate(ctx context.Context, q Query) error {
	return s.cache.Invalidate(ctx, q)
}

func fetchCached[T any](ctx context.Context, s *Service, q Query, dest *T, loader func(context.Context) (T, error)) error {
	if s.repo == nil {
		return fmt.Errorf("reports: repository not configured")
	}
	key, err := s.cache.BuildKey(ctx, q)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, func(ctx context.Context) (interface{}, error) {
		resultChan := s.group.DoChan(key, func() (interface{}, error) {
			return loader(ctx)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-resultChan:
			return res.Val, res.Err
		}
	})
}

// AgedAnalysis loads the aged-analysis payload: the fixed-bucket summary and
// the per-tenant breakdown, fetched concurrently.
func (s *Service) AgedAnalysis(ctx context.Context, filter AsOfFilter) (AgedAnalysis, error) {
	filter = filter.normalized()
	q := NewQuery(ReportAgedAnalysis, filter.Filters())
	var out AgedAnalysis
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) (AgedAnalysis, error) {
		var payload AgedAnalysis
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			summary, err := s.repo.AgingSummary(gctx, filter)
			if err != nil {
				return err
			}
			payload.Summary = summary
			return nil
		})
		g.Go(func() error {
			tenants, err := s.repo.AgingByTenant(gctx, filter)
			if err != nil {
				return err
			}
			payload.ByTenant = tenants
			return nil
		})
		if err := g.Wait(); err != nil {
			return AgedAnalysis{}, err
		}
		return payload.Normalized(), nil
	})
	return out.Normalized(), err
}

// BankToIncome loads the level-1 bank-to-income matrix.
func (s *Service) BankToIncome(ctx context.Context, filter RangeFilter) (BankIncomeMatrix, error) {
	filter = filter.normalized()
	q := NewQuery(ReportBankToIncome, filter.Filters())
	var out BankIncomeMatrix
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) (BankIncomeMatrix, error) {
		m, err := s.repo.BankIncomeMatrix(ctx, filter)
		if err != nil {
			return BankIncomeMatrix{}, err
		}
		return m.Normalized(), nil
	})
	return out.Normalized(), err
}

// BankIncomeDetail loads the level-2 detail for one bank account.
func (s *Service) BankIncomeDetail(ctx context.Context, bankAccountID int64, filter RangeFilter) ([]IncomeLine, error) {
	filter = filter.normalized()
	filters := filter.Filters()
	filters["bank_account_id"] = formatID(bankAccountID)
	q := NewQuery(ReportBankIncomeDetail, filters)
	var out []IncomeLine
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]IncomeLine, error) {
		return s.repo.BankIncomeDetail(ctx, bankAccountID, filter)
	})
	return emptyIfNil(out), err
}

// BankIncomeReceipts loads the level-3 receipts for one bank account and
// income type.
func (s *Service) BankIncomeReceipts(ctx context.Context, bankAccountID int64, incomeType string, filter RangeFilter) ([]Receipt, error) {
	filter = filter.normalized()
	filters := filter.Filters()
	filters["bank_account_id"] = formatID(bankAccountID)
	filters["income_type"] = incomeType
	q := NewQuery(ReportBankIncomeReceipts, filters)
	var out []Receipt
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]Receipt, error) {
		return s.repo.BankIncomeReceipts(ctx, bankAccountID, incomeType, filter)
	})
	return emptyIfNil(out), err
}

// CommissionByProperty loads the level-1 commission report.
func (s *Service) CommissionByProperty(ctx context.Context, filter RangeFilter) ([]PropertyCommission, error) {
	filter = filter.normalized()
	q := NewQuery(ReportCommissionByProperty, filter.Filters())
	var out []PropertyCommission
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]PropertyCommission, error) {
		return s.repo.CommissionByProperty(ctx, filter)
	})
	return emptyIfNil(out), err
}

// CommissionLeases loads the level-2 commission drill-down for one property.
func (s *Service) CommissionLeases(ctx context.Context, propertyID int64, filter RangeFilter) ([]LeaseCommission, error) {
	filter = filter.normalized()
	filters := filter.Filters()
	filters["property_id"] = formatID(propertyID)
	q := NewQuery(ReportCommissionLeases, filters)
	var out []LeaseCommission
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]LeaseCommission, error) {
		return s.repo.CommissionLeases(ctx, propertyID, filter)
	})
	return emptyIfNil(out), err
}

// CommissionPayments loads the level-3 commission leaf detail.
func (s *Service) CommissionPayments(ctx context.Context, propertyID, leaseID int64, filter RangeFilter) ([]CommissionPayment, error) {
	filter = filter.normalized()
	filters := filter.Filters()
	filters["property_id"] = formatID(propertyID)
	filters["lease_id"] = formatID(leaseID)
	q := NewQuery(ReportCommissionPayments, filters)
	var out []CommissionPayment
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]CommissionPayment, error) {
		return s.repo.CommissionPayments(ctx, propertyID, leaseID, filter)
	})
	return emptyIfNil(out), err
}

// RentRoll loads the property-level rent roll.
func (s *Service) RentRoll(ctx context.Context, filter AsOfFilter) ([]PropertyRent, error) {
	filter = filter.normalized()
	q := NewQuery(ReportRentRoll, filter.Filters())
	var out []PropertyRent
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]PropertyRent, error) {
		return s.repo.RentRoll(ctx, filter)
	})
	return emptyIfNil(out), err
}

// RentRollLeases loads the property→lease rent-roll drill-down.
func (s *Service) RentRollLeases(ctx context.Context, propertyID int64, asOf time.Time) ([]LeaseRent, error) {
	if asOf.IsZero() {
		asOf = today()
	}
	filters := map[string]string{
		"as_of_date":  asOf.Format("2006-01-02"),
		"property_id": formatID(propertyID),
	}
	q := NewQuery(ReportRentRollLeases, filters)
	var out []LeaseRent
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) ([]LeaseRent, error) {
		return s.repo.RentRollLeases(ctx, propertyID, asOf)
	})
	return emptyIfNil(out), err
}

// TrialBalance loads the trial balance for a date range.
func (s *Service) TrialBalance(ctx context.Context, filter RangeFilter) (TrialBalance, error) {
	filter = filter.normalized()
	q := NewQuery(ReportTrialBalance, filter.Filters())
	var out TrialBalance
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) (TrialBalance, error) {
		tb, err := s.repo.TrialBalance(ctx, filter)
		if err != nil {
			return TrialBalance{}, err
		}
		return tb.Normalized(), nil
	})
	return out.Normalized(), err
}

// IncomeStatement loads the income statement for a date range.
func (s *Service) IncomeStatement(ctx context.Context, filter RangeFilter) (IncomeStatement, error) {
	filter = filter.normalized()
	q := NewQuery(ReportIncomeStatement, filter.Filters())
	var out IncomeStatement
	err := fetchCached(ctx, s, q, &out, func(ctx context.Context) (IncomeStatement, error) {
		st, err := s.repo.IncomeStatement(ctx, filter)
		if err != nil {
			return IncomeStatement{}, err
		}
		return st.Normalized(), nil
	})
	return out.Normalized(), err
}

// WarmupScopes lists the property scopes the warmup job iterates.
func (s *Service) WarmupScopes(ctx context.Context) ([]WarmupScope, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("reports: repository not configured")
	}
	return s.repo.WarmupScopes(ctx)
}

func (f AsOfFilter) normalized() AsOfFilter {
	if f.AsOf.IsZero() {
		f.AsOf = today()
	}
	return f
}

func (f RangeFilter) normalized() RangeFilter {
	if f.From.IsZero() && f.To.IsZero() {
		now := today()
		f.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		f.To = f.From.AddDate(0, 1, -1)
		return f
	}
	if f.From.IsZero() {
		f.From = time.Date(f.To.Year(), f.To.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if f.To.IsZero() {
		f.To = f.From.AddDate(0, 1, -1)
	}
	return f
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
