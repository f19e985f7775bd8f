// Package reporthttp exposes the report endpoints: aged analysis, the
// drill-down hierarchies, rent roll and the financial statements, plus CSV
// and XLSX exports of each.
package reporthttp

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parklane-pm/parklane/internal/platform/httpx"
	"github.com/parklane-pm/parklane/internal/reports"
)

const requestTimeout = 5 * time.Second

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	AgedAnalysis(ctx context.Context, filter reports.AsOfFilter) (reports.AgedAnalysis, error)
	BankToIncome(ctx context.Context, filter reports.RangeFilter) (reports.BankIncomeMatrix, error)
	BankIncomeDetail(ctx context.Context, bankAccountID int64, filter reports.RangeFilter) ([]reports.IncomeLine, error)
	BankIncomeReceipts(ctx context.Context, bankAccountID int64, incomeType string, filter reports.RangeFilter) ([]reports.Receipt, error)
	CommissionByProperty(ctx context.Context, filter reports.RangeFilter) ([]reports.PropertyCommission, error)
	CommissionLeases(ctx context.Context, propertyID int64, filter reports.RangeFilter) ([]reports.LeaseCommission, error)
	CommissionPayments(ctx context.Context, propertyID, leaseID int64, filter reports.RangeFilter) ([]reports.CommissionPayment, error)
	RentRoll(ctx context.Context, filter reports.AsOfFilter) ([]reports.PropertyRent, error)
	RentRollLeases(ctx context.Context, propertyID int64, asOf time.Time) ([]reports.LeaseRent, error)
	TrialBalance(ctx context.Context, filter reports.RangeFilter) (reports.TrialBalance, error)
	IncomeStatement(ctx context.Context, filter reports.RangeFilter) (reports.IncomeStatement, error)
	Bump(ctx context.Context) error
	Invalidate(ctx context.Context, q reports.Query) error
}

// Handler coordinates HTTP requests for the report endpoints.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	rateLimit func(http.Handler) http.Handler
	now       func() time.Time
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		rateLimit: exportRateLimiter(),
		now:       time.Now,
	}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// tableParams carries the per-request table state of one listing.
type tableParams struct {
	Search string
	Page   int
}

// tableMeta echoes the derived table state back to the caller.
type tableMeta struct {
	Search     string `json:"search"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	TotalRows  int    `json:"total_rows"`
}

func parseTableParams(r *http.Request) tableParams {
	params := tableParams{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   1,
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			params.Page = page
		}
	}
	return params
}

// paginate derives the table view of one request: filtered rows sliced to
// the requested page, with the page clamped into the filtered set's range so
// a stale index never shows a blank page.
func paginate[T any](rows []T, fields func(T) []string, params tableParams) ([]T, tableMeta) {
	view := reports.NewTableView(fields)
	view.SetSource(rows)
	view.SetSearch(params.Search)
	view.SetPage(params.Page)
	snap := view.Snapshot()
	return snap.PageItems, tableMeta{
		Search:     snap.Search,
		Page:       snap.Page,
		TotalPages: snap.TotalPages,
		TotalRows:  len(snap.Filtered),
	}
}

func (h *Handler) parseAsOfFilter(r *http.Request) (reports.AsOfFilter, error) {
	q := r.URL.Query()
	filter := reports.AsOfFilter{AsOf: h.today()}
	if raw := strings.TrimSpace(q.Get("as_of")); raw != "" {
		asOf, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return reports.AsOfFilter{}, paramError{"as_of"}
		}
		filter.AsOf = asOf
	}
	propertyID, err := optionalID(q.Get("property_id"))
	if err != nil {
		return reports.AsOfFilter{}, paramError{"property_id"}
	}
	filter.PropertyID = propertyID
	landlordID, err := optionalID(q.Get("landlord_id"))
	if err != nil {
		return reports.AsOfFilter{}, paramError{"landlord_id"}
	}
	filter.LandlordID = landlordID
	return filter, nil
}

func (h *Handler) parseRangeFilter(r *http.Request) (reports.RangeFilter, error) {
	q := r.URL.Query()
	now := h.today()
	filter := reports.RangeFilter{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	filter.To = filter.From.AddDate(0, 1, -1)
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return reports.RangeFilter{}, paramError{"from"}
		}
		filter.From = from
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return reports.RangeFilter{}, paramError{"to"}
		}
		filter.To = to
	}
	if filter.To.Before(filter.From) {
		return reports.RangeFilter{}, paramError{"to"}
	}
	propertyID, err := optionalID(q.Get("property_id"))
	if err != nil {
		return reports.RangeFilter{}, paramError{"property_id"}
	}
	filter.PropertyID = propertyID
	return filter, nil
}

func (h *Handler) today() time.Time {
	now := h.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, paramError{"id"}
	}
	return &id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, paramError{name}
	}
	return id, nil
}

// refetchRequested reports whether the caller asked to bypass the cached
// payload for this query.
func refetchRequested(r *http.Request) bool {
	return r.URL.Query().Get("refetch") == "1"
}

func (h *Handler) invalidateIfRequested(ctx context.Context, r *http.Request, report reports.ReportID, filters map[string]string) {
	if !refetchRequested(r) {
		return
	}
	if err := h.service.Invalidate(ctx, reports.NewQuery(report, filters)); err != nil {
		h.logError("invalidate report cache", err)
	}
}

func (h *Handler) handleCacheBump(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := h.service.Bump(ctx); err != nil {
		h.respondServerError(w, "bump report cache", err)
		return
	}
	BustReportViewCache()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "bumped"})
}

func (h *Handler) respondFilterError(w http.ResponseWriter, err error) {
	httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
}

func (h *Handler) respondServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

type paramError struct {
	field string
}

func (p paramError) Error() string {
	return "invalid " + p.field
}
