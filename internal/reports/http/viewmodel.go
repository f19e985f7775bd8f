package reporthttp

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/parklane-pm/parklane/internal/reports"
)

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders a display amount like "$1,234.56".
func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// BucketBarVM is one aging bucket bar with its display amount.
type BucketBarVM struct {
	reports.BucketBar
	AmountDisplay string `json:"amount_display"`
}

// WorstBucketVM drives the "worst bucket" card on the aged-analysis view.
type WorstBucketVM struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
}

// AgedSummaryVM is the presentational summary block of the aged analysis.
type AgedSummaryVM struct {
	Totals                  reports.BucketSummary `json:"totals"`
	TotalOutstandingDisplay string                `json:"total_outstanding_display"`
	TotalOverdueDisplay     string                `json:"total_overdue_display"`
	Bars                    []BucketBarVM         `json:"bars"`
	WorstBucket             WorstBucketVM         `json:"worst_bucket"`
}

// AgedAnalysisVM is the built aged-analysis view model held in the
// view-model cache.
type AgedAnalysisVM struct {
	Summary  AgedSummaryVM
	ByTenant []reports.TenantAging
}

func buildAgedAnalysisVM(payload reports.AgedAnalysis) AgedAnalysisVM {
	bars := reports.BucketBars(payload.Summary)
	barVMs := make([]BucketBarVM, len(bars))
	for i, bar := range bars {
		barVMs[i] = BucketBarVM{BucketBar: bar, AmountDisplay: formatMoney(bar.Amount)}
	}
	worst := reports.WorstBucket(payload.Summary)
	return AgedAnalysisVM{
		Summary: AgedSummaryVM{
			Totals:                  payload.Summary,
			TotalOutstandingDisplay: formatMoney(payload.Summary.TotalOutstanding),
			TotalOverdueDisplay:     formatMoney(payload.Summary.TotalOverdue),
			Bars:                    barVMs,
			WorstBucket: WorstBucketVM{
				Key:           worst.Key,
				Label:         worst.Label,
				Amount:        worst.Amount,
				AmountDisplay: formatMoney(worst.Amount),
			},
		},
		ByTenant: payload.ByTenant,
	}
}

func cloneAgedAnalysisVM(src AgedAnalysisVM) AgedAnalysisVM {
	dst := src
	dst.Summary.Bars = append([]BucketBarVM(nil), src.Summary.Bars...)
	dst.ByTenant = append([]reports.TenantAging(nil), src.ByTenant...)
	return dst
}

// BankIncomeVM is the bank-to-income matrix with heatmap tiers and display
// totals attached.
type BankIncomeVM struct {
	Matrix       []reports.BankIncomeRow            `json:"matrix"`
	BankColumns  []reports.BankColumn               `json:"bank_columns"`
	Totals       reports.BankIncomeRow              `json:"totals"`
	TotalDisplay string                             `json:"total_display"`
	Tiers        map[string]map[string]reports.Tier `json:"tiers"`
}

func buildBankIncomeVM(matrix reports.BankIncomeMatrix) BankIncomeVM {
	matrix = matrix.Normalized()
	return BankIncomeVM{
		Matrix:       matrix.Matrix,
		BankColumns:  matrix.BankColumns,
		Totals:       matrix.Totals,
		TotalDisplay: formatMoney(matrix.Totals.Total),
		Tiers:        reports.MatrixTiers(matrix),
	}
}

func cloneBankIncomeVM(src BankIncomeVM) BankIncomeVM {
	dst := src
	dst.Matrix = make([]reports.BankIncomeRow, len(src.Matrix))
	for i, row := range src.Matrix {
		cells := make(map[string]float64, len(row.Cells))
		for k, v := range row.Cells {
			cells[k] = v
		}
		row.Cells = cells
		dst.Matrix[i] = row
	}
	dst.BankColumns = append([]reports.BankColumn(nil), src.BankColumns...)
	totalCells := make(map[string]float64, len(src.Totals.Cells))
	for k, v := range src.Totals.Cells {
		totalCells[k] = v
	}
	dst.Totals.Cells = totalCells
	tiers := make(map[string]map[string]reports.Tier, len(src.Tiers))
	for rowKey, rowTiers := range src.Tiers {
		copied := make(map[string]reports.Tier, len(rowTiers))
		for col, tier := range rowTiers {
			copied[col] = tier
		}
		tiers[rowKey] = copied
	}
	dst.Tiers = tiers
	return dst
}

// TrialBalanceVM adds display totals to the trial balance.
type TrialBalanceVM struct {
	Lines              []reports.TrialBalanceLine `json:"lines"`
	TotalDebit         float64                    `json:"total_debit"`
	TotalCredit        float64                    `json:"total_credit"`
	TotalDebitDisplay  string                     `json:"total_debit_display"`
	TotalCreditDisplay string                     `json:"total_credit_display"`
	Balanced           bool                       `json:"balanced"`
}

func buildTrialBalanceVM(tb reports.TrialBalance) TrialBalanceVM {
	return TrialBalanceVM{
		Lines:              tb.Lines,
		TotalDebit:         tb.TotalDebit,
		TotalCredit:        tb.TotalCredit,
		TotalDebitDisplay:  formatMoney(tb.TotalDebit),
		TotalCreditDisplay: formatMoney(tb.TotalCredit),
		Balanced:           tb.Balanced,
	}
}

// IncomeStatementVM adds display totals to the income statement.
type IncomeStatementVM struct {
	Lines               []reports.IncomeStatementLine `json:"lines"`
	TotalIncome         float64                       `json:"total_income"`
	TotalExpenses       float64                       `json:"total_expenses"`
	NetIncome           float64                       `json:"net_income"`
	TotalIncomeDisplay  string                        `json:"total_income_display"`
	TotalExpenseDisplay string                        `json:"total_expense_display"`
	NetIncomeDisplay    string                        `json:"net_income_display"`
}

func buildIncomeStatementVM(st reports.IncomeStatement) IncomeStatementVM {
	return IncomeStatementVM{
		Lines:               st.Lines,
		TotalIncome:         st.TotalIncome,
		TotalExpenses:       st.TotalExpenses,
		NetIncome:           st.NetIncome,
		TotalIncomeDisplay:  formatMoney(st.TotalIncome),
		TotalExpenseDisplay: formatMoney(st.TotalExpenses),
		NetIncomeDisplay:    formatMoney(st.NetIncome),
	}
}

// Searchable field selectors for the report tables.

func tenantAgingFields(row reports.TenantAging) []string {
	return []string{row.TenantName}
}

func propertyRentFields(row reports.PropertyRent) []string {
	return []string{row.PropertyName}
}

func leaseRentFields(row reports.LeaseRent) []string {
	return []string{row.LeaseNumber, row.TenantName, row.UnitLabel}
}

func incomeLineFields(row reports.IncomeLine) []string {
	return []string{row.IncomeType, row.IncomeTypeDisplay}
}

func receiptFields(row reports.Receipt) []string {
	return []string{row.TenantName, row.PropertyName, row.Reference}
}

func propertyCommissionFields(row reports.PropertyCommission) []string {
	return []string{row.PropertyName, row.LandlordName}
}

func leaseCommissionFields(row reports.LeaseCommission) []string {
	return []string{row.LeaseNumber, row.TenantName, row.UnitLabel}
}

func commissionPaymentFields(row reports.CommissionPayment) []string {
	return []string{row.PaidAt.Format("2006-01-02")}
}

func trialBalanceLineFields(row reports.TrialBalanceLine) []string {
	return []string{row.AccountCode, row.AccountName}
}

func incomeStatementLineFields(row reports.IncomeStatementLine) []string {
	return []string{row.Section, row.AccountName}
}
