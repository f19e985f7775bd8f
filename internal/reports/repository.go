package reports

import (
	"context"
	"time"
)

// Repository exposes the report readers the service composes. All queries
// are read-only; the ledger itself is written elsewhere.
type Repository interface {
	AgingSummary(ctx context.Context, filter AsOfFilter) (BucketSummary, error)
	AgingByTenant(ctx context.Context, filter AsOfFilter) ([]TenantAging, error)

	BankIncomeMatrix(ctx context.Context, filter RangeFilter) (BankIncomeMatrix, error)
	BankIncomeDetail(ctx context.Context, bankAccountID int64, filter RangeFilter) ([]IncomeLine, error)
	BankIncomeReceipts(ctx context.Context, bankAccountID int64, incomeType string, filter RangeFilter) ([]Receipt, error)

	CommissionByProperty(ctx context.Context, filter RangeFilter) ([]PropertyCommission, error)
	CommissionLeases(ctx context.Context, propertyID int64, filter RangeFilter) ([]LeaseCommission, error)
	CommissionPayments(ctx context.Context, propertyID, leaseID int64, filter RangeFilter) ([]CommissionPayment, error)

	RentRoll(ctx context.Context, filter AsOfFilter) ([]PropertyRent, error)
	RentRollLeases(ctx context.Context, propertyID int64, asOf time.Time) ([]LeaseRent, error)

	TrialBalance(ctx context.Context, filter RangeFilter) (TrialBalance, error)
	IncomeStatement(ctx context.Context, filter RangeFilter) (IncomeStatement, error)

	WarmupScopes(ctx context.Context) ([]WarmupScope, error)
}

// WarmupScope is one property scope whose reports the warmup job pre-fills.
type WarmupScope struct {
	PropertyID int64
	LandlordID int64
}
