// Package reports contains the report view-model layer: query-keyed caching,
// drill-down navigation state, client-style table filtering/pagination, aging
// bucket presentation and heatmap tiering for the property reports.
package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ReportID identifies a report endpoint and scopes its cache keys.
type ReportID string

const (
	ReportAgedAnalysis         ReportID = "aged_analysis"
	ReportBankToIncome         ReportID = "bank_to_income"
	ReportBankIncomeDetail     ReportID = "bank_income_detail"
	ReportBankIncomeReceipts   ReportID = "bank_income_receipts"
	ReportCommissionByProperty ReportID = "commission_by_property"
	ReportCommissionLeases     ReportID = "commission_leases"
	ReportCommissionPayments   ReportID = "commission_payments"
	ReportRentRoll             ReportID = "rent_roll"
	ReportRentRollLeases       ReportID = "rent_roll_leases"
	ReportTrialBalance         ReportID = "trial_balance"
	ReportIncomeStatement      ReportID = "income_statement"
)

// Query identifies one fetch of one report: the report plus every filter that
// scopes it. Two queries with equal keys share one cached payload.
type Query struct {
	Report  ReportID
	Filters map[string]string
}

// NewQuery builds a query, copying the filter map.
func NewQuery(report ReportID, filters map[string]string) Query {
	q := Query{Report: report, Filters: make(map[string]string, len(filters))}
	for k, v := range filters {
		if v == "" {
			continue
		}
		q.Filters[k] = v
	}
	return q
}

// Key renders the canonical cache key: report id plus sorted k=v filter pairs.
func (q Query) Key() string {
	if len(q.Filters) == 0 {
		return string(q.Report)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, string(q.Report))
	for _, k := range keys {
		parts = append(parts, k+"="+q.Filters[k])
	}
	return strings.Join(parts, "|")
}

// AsOfFilter scopes point-in-time reports (aged analysis, rent roll).
type AsOfFilter struct {
	AsOf       time.Time
	PropertyID *int64
	LandlordID *int64
}

// Filters renders the filter map used for cache keying.
func (f AsOfFilter) Filters() map[string]string {
	m := map[string]string{"as_of_date": f.AsOf.Format("2006-01-02")}
	if f.PropertyID != nil {
		m["property_id"] = strconv.FormatInt(*f.PropertyID, 10)
	}
	if f.LandlordID != nil {
		m["landlord_id"] = strconv.FormatInt(*f.LandlordID, 10)
	}
	return m
}

// RangeFilter scopes date-ranged reports.
type RangeFilter struct {
	From       time.Time
	To         time.Time
	PropertyID *int64
}

// Filters renders the filter map used for cache keying.
func (f RangeFilter) Filters() map[string]string {
	m := map[string]string{
		"start_date": f.From.Format("2006-01-02"),
		"end_date":   f.To.Format("2006-01-02"),
	}
	if f.PropertyID != nil {
		m["property_id"] = strconv.FormatInt(*f.PropertyID, 10)
	}
	return m
}

// BucketSummary is the fixed-bucket aging summary. Totals come from storage
// and are never recomputed here.
type BucketSummary struct {
	Current          float64 `json:"current"`
	Days31To60       float64 `json:"days_31_60"`
	Days61To90       float64 `json:"days_61_90"`
	Days91To120      float64 `json:"days_91_120"`
	DaysOver120      float64 `json:"days_over_120"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalOverdue     float64 `json:"total_overdue"`
	OverdueCount     int     `json:"overdue_count"`
}

// TenantAging is one tenant's row in the aged-analysis detail table.
type TenantAging struct {
	TenantID    int64   `json:"tenant_id"`
	TenantName  string  `json:"tenant_name"`
	Current     float64 `json:"current"`
	Days31To60  float64 `json:"days_31_60"`
	Days61To90  float64 `json:"days_61_90"`
	Days91To120 float64 `json:"days_91_120"`
	DaysOver120 float64 `json:"days_over_120"`
	Total       float64 `json:"total"`
}

// AgedAnalysis is the full aged-analysis payload.
type AgedAnalysis struct {
	Summary  BucketSummary `json:"summary"`
	ByTenant []TenantAging `json:"by_tenant"`
}

// BankColumn describes one bank-account column of the bank-to-income matrix.
type BankColumn struct {
	BankAccountID   int64  `json:"bank_account_id"`
	BankAccountName string `json:"bank_account_name"`
}

// BankIncomeRow is one income-type row of the matrix. Cells are keyed by
// bank account id rendered as a decimal string.
type BankIncomeRow struct {
	IncomeType        string             `json:"income_type"`
	IncomeTypeDisplay string             `json:"income_type_display"`
	Cells             map[string]float64 `json:"cells"`
	Total             float64            `json:"total"`
}

// BankIncomeMatrix is the level-1 bank-to-income payload.
type BankIncomeMatrix struct {
	Matrix      []BankIncomeRow `json:"matrix"`
	BankColumns []BankColumn    `json:"bank_columns"`
	Totals      BankIncomeRow   `json:"totals"`
}

// IncomeLine is one row of the level-2 bank-to-income detail.
type IncomeLine struct {
	IncomeType        string  `json:"income_type"`
	IncomeTypeDisplay string  `json:"income_type_display"`
	Amount            float64 `json:"amount"`
	ReceiptCount      int     `json:"receipt_count"`
}

// Receipt is one row of the level-3 bank-to-income leaf detail.
type Receipt struct {
	ReceiptID    int64     `json:"receipt_id"`
	ReceivedAt   time.Time `json:"received_at"`
	TenantName   string    `json:"tenant_name"`
	PropertyName string    `json:"property_name"`
	Reference    string    `json:"reference"`
	Amount       float64   `json:"amount"`
}

// PropertyCommission is one row of the level-1 commission report.
type PropertyCommission struct {
	PropertyID   int64   `json:"property_id"`
	PropertyName string  `json:"property_name"`
	LandlordName string  `json:"landlord_name"`
	LeaseCount   int     `json:"lease_count"`
	Amount       float64 `json:"amount"`
}

// LeaseCommission is one row of the level-2 commission drill-down.
type LeaseCommission struct {
	LeaseID     int64   `json:"lease_id"`
	LeaseNumber string  `json:"lease_number"`
	TenantName  string  `json:"tenant_name"`
	UnitLabel   string  `json:"unit_label"`
	Amount      float64 `json:"amount"`
}

// CommissionPayment is one row of the level-3 commission leaf detail.
type CommissionPayment struct {
	PaymentID  int64     `json:"payment_id"`
	PaidAt     time.Time `json:"paid_at"`
	RentAmount float64   `json:"rent_amount"`
	Rate       float64   `json:"rate"`
	Fee        float64   `json:"fee"`
}

// PropertyRent is one row of the rent-roll property summary.
type PropertyRent struct {
	PropertyID    int64   `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	UnitCount     int     `json:"unit_count"`
	OccupiedUnits int     `json:"occupied_units"`
	MonthlyRent   float64 `json:"monthly_rent"`
	Arrears       float64 `json:"arrears"`
}

// LeaseRent is one row of the rent-roll property→lease drill-down.
type LeaseRent struct {
	LeaseID     int64     `json:"lease_id"`
	LeaseNumber string    `json:"lease_number"`
	TenantName  string    `json:"tenant_name"`
	UnitLabel   string    `json:"unit_label"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent float64   `json:"monthly_rent"`
	DepositHeld float64   `json:"deposit_held"`
}

// TrialBalanceLine is one account line of the trial balance.
type TrialBalanceLine struct {
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

// TrialBalance is the trial-balance payload.
type TrialBalance struct {
	Lines       []TrialBalanceLine `json:"lines"`
	TotalDebit  float64            `json:"total_debit"`
	TotalCredit float64            `json:"total_credit"`
	Balanced    bool               `json:"balanced"`
}

// IncomeStatementLine is one line of the income statement.
type IncomeStatementLine struct {
	Section     string  `json:"section"`
	AccountName string  `json:"account_name"`
	Amount      float64 `json:"amount"`
}

// IncomeStatement is the income-statement payload.
type IncomeStatement struct {
	Lines         []IncomeStatementLine `json:"lines"`
	TotalIncome   float64               `json:"total_income"`
	TotalExpenses float64               `json:"total_expenses"`
	NetIncome     float64               `json:"net_income"`
}
