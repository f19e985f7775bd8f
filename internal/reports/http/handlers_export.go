package reporthttp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportRateLimiter throttles the export endpoints per client address.
func exportRateLimiter() func(http.Handler) http.Handler {
	return httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
}

func setAttachmentHeaders(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (h *Handler) handleAgedAnalysisExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseAsOfFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		payload, err := h.service.AgedAnalysis(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export aged analysis", err)
			return
		}
		filename := "aged_analysis_" + filter.AsOf.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeAgedAnalysisXLSX(w, payload)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeAgedAnalysisCSV(w, payload, filter.Filters())
		}
		if err != nil {
			h.logError("stream aged analysis export", err)
		}
	}
}

func (h *Handler) handleBankIncomeExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseRangeFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		matrix, err := h.service.BankToIncome(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export bank to income", err)
			return
		}
		filename := "bank_to_income_" + filter.From.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeBankIncomeXLSX(w, matrix)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeBankIncomeCSV(w, matrix, filter.Filters())
		}
		if err != nil {
			h.logError("stream bank to income export", err)
		}
	}
}

func (h *Handler) handleCommissionsExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseRangeFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		rows, err := h.service.CommissionByProperty(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export commissions", err)
			return
		}
		filename := "commissions_" + filter.From.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeCommissionsXLSX(w, rows)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeCommissionsCSV(w, rows, filter.Filters())
		}
		if err != nil {
			h.logError("stream commissions export", err)
		}
	}
}

func (h *Handler) handleRentRollExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseAsOfFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		rows, err := h.service.RentRoll(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export rent roll", err)
			return
		}
		filename := "rent_roll_" + filter.AsOf.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeRentRollXLSX(w, rows)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeRentRollCSV(w, rows, filter.Filters())
		}
		if err != nil {
			h.logError("stream rent roll export", err)
		}
	}
}

func (h *Handler) handleTrialBalanceExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseRangeFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		tb, err := h.service.TrialBalance(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export trial balance", err)
			return
		}
		filename := "trial_balance_" + filter.From.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeTrialBalanceXLSX(w, tb)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeTrialBalanceCSV(w, tb, filter.Filters())
		}
		if err != nil {
			h.logError("stream trial balance export", err)
		}
	}
}

func (h *Handler) handleIncomeStatementExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := h.parseRangeFilter(r)
		if err != nil {
			h.respondFilterError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		st, err := h.service.IncomeStatement(ctx, filter)
		if err != nil {
			h.respondServerError(w, "export income statement", err)
			return
		}
		filename := "income_statement_" + filter.From.Format("2006-01-02")
		switch format {
		case "xlsx":
			setAttachmentHeaders(w, xlsxContentType, filename+".xlsx")
			err = writeIncomeStatementXLSX(w, st)
		default:
			setAttachmentHeaders(w, csvContentType, filename+".csv")
			err = writeIncomeStatementCSV(w, st, filter.Filters())
		}
		if err != nil {
			h.logError("stream income statement export", err)
		}
	}
}
