package reporthttp

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the report endpoints under the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/aged-analysis", h.handleAgedAnalysis)

		r.Get("/bank-to-income", h.handleBankToIncome)
		r.Get("/bank-to-income/{bankAccountID}", h.handleBankIncomeDetail)
		r.Get("/bank-to-income/{bankAccountID}/{incomeType}", h.handleBankIncomeReceipts)

		r.Get("/commissions", h.handleCommissions)
		r.Get("/commissions/{propertyID}", h.handleCommissionLeases)
		r.Get("/commissions/{propertyID}/{leaseID}", h.handleCommissionPayments)

		r.Get("/rent-roll", h.handleRentRoll)
		r.Get("/rent-roll/{propertyID}", h.handleRentRollLeases)

		r.Get("/trial-balance", h.handleTrialBalance)
		r.Get("/income-statement", h.handleIncomeStatement)

		r.Post("/cache/bump", h.handleCacheBump)

		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit)
			r.Get("/aged-analysis/export.csv", h.handleAgedAnalysisExport("csv"))
			r.Get("/aged-analysis/export.xlsx", h.handleAgedAnalysisExport("xlsx"))
			r.Get("/bank-to-income/export.csv", h.handleBankIncomeExport("csv"))
			r.Get("/bank-to-income/export.xlsx", h.handleBankIncomeExport("xlsx"))
			r.Get("/commissions/export.csv", h.handleCommissionsExport("csv"))
			r.Get("/commissions/export.xlsx", h.handleCommissionsExport("xlsx"))
			r.Get("/rent-roll/export.csv", h.handleRentRollExport("csv"))
			r.Get("/rent-roll/export.xlsx", h.handleRentRollExport("xlsx"))
			r.Get("/trial-balance/export.csv", h.handleTrialBalanceExport("csv"))
			r.Get("/trial-balance/export.xlsx", h.handleTrialBalanceExport("xlsx"))
			r.Get("/income-statement/export.csv", h.handleIncomeStatementExport("csv"))
			r.Get("/income-statement/export.xlsx", h.handleIncomeStatementExport("xlsx"))
		})
	})
}
