package reports

import (
	"context"
	"testing"
	"time"
)

type stubRepo struct {
	Repository

	summaryCalls int
	tenantCalls  int
	matrixCalls  int
	rentCalls    int

	summary BucketSummary
	tenants []TenantAging
	matrix  BankIncomeMatrix
	rents   []PropertyRent
}

func (r *stubRepo) AgingSummary(ctx context.Context, filter AsOfFilter) (BucketSummary, error) {
	r.summaryCalls++
	return r.summary, nil
}

func (r *stubRepo) AgingByTenant(ctx context.Context, filter AsOfFilter) ([]TenantAging, error) {
	r.tenantCalls++
	return r.tenants, nil
}

func (r *stubRepo) BankIncomeMatrix(ctx context.Context, filter RangeFilter) (BankIncomeMatrix, error) {
	r.matrixCalls++
	return r.matrix, nil
}

func (r *stubRepo) RentRoll(ctx context.Context, filter AsOfFilter) ([]PropertyRent, error) {
	r.rentCalls++
	return r.rents, nil
}

func TestServiceAgedAnalysisCaches(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	repo := &stubRepo{
		summary: BucketSummary{Current: 1000, TotalOutstanding: 1000},
		tenants: []TenantAging{{TenantID: 1, TenantName: "Acme", Current: 1000, Total: 1000}},
	}
	svc := NewService(repo, cache)
	filter := AsOfFilter{AsOf: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)}

	first, err := svc.AgedAnalysis(ctx, filter)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := svc.AgedAnalysis(ctx, filter)
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}

	if repo.summaryCalls != 1 || repo.tenantCalls != 1 {
		t.Fatalf("repository hit on cached load: summary=%d tenants=%d", repo.summaryCalls, repo.tenantCalls)
	}
	if first.Summary.Current != 1000 || second.Summary.Current != 1000 {
		t.Fatalf("payload mismatch: %+v / %+v", first.Summary, second.Summary)
	}
	if len(second.ByTenant) != 1 || second.ByTenant[0].TenantName != "Acme" {
		t.Fatalf("tenant rows mismatch: %+v", second.ByTenant)
	}
}

func TestServiceBumpForcesReload(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	repo := &stubRepo{rents: []PropertyRent{{PropertyID: 1, PropertyName: "Harbour View"}}}
	svc := NewService(repo, cache)
	filter := AsOfFilter{AsOf: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)}

	if _, err := svc.RentRoll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RentRoll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if repo.rentCalls != 1 {
		t.Fatalf("expected 1 repository call before bump, got %d", repo.rentCalls)
	}

	if err := svc.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if _, err := svc.RentRoll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if repo.rentCalls != 2 {
		t.Fatalf("bump must retire the cached payload, got %d calls", repo.rentCalls)
	}
}

func TestServiceNormalizesNilSlices(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	repo := &stubRepo{matrix: BankIncomeMatrix{}}
	svc := NewService(repo, cache)

	m, err := svc.BankToIncome(ctx, RangeFilter{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Matrix == nil || m.BankColumns == nil {
		t.Fatalf("matrix payload must never carry nil slices: %+v", m)
	}
	if m.Totals.Cells == nil {
		t.Fatalf("totals row must carry a cell map")
	}
}

func TestServiceDistinctFiltersDistinctCacheEntries(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	repo := &stubRepo{rents: []PropertyRent{{PropertyID: 1}}}
	svc := NewService(repo, cache)

	aug := AsOfFilter{AsOf: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	sep := AsOfFilter{AsOf: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}

	if _, err := svc.RentRoll(ctx, aug); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RentRoll(ctx, sep); err != nil {
		t.Fatal(err)
	}
	if repo.rentCalls != 2 {
		t.Fatalf("different filters must not share a cache entry, got %d calls", repo.rentCalls)
	}
}
