package reporthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/parklane-pm/parklane/internal/platform/httpx"
	"github.com/parklane-pm/parklane/internal/reports"
)

type agedAnalysisResponse struct {
	Filters  map[string]string     `json:"filters"`
	Summary  AgedSummaryVM         `json:"summary"`
	ByTenant []reports.TenantAging `json:"by_tenant"`
	Table    tableMeta             `json:"table"`
}

func (h *Handler) handleAgedAnalysis(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseAsOfFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportAgedAnalysis, filter.Filters())

	vm, err := h.cachedAgedAnalysis(ctx, filter, refetchRequested(r))
	if err != nil {
		h.respondServerError(w, "load aged analysis", err)
		return
	}

	rows, meta := paginate(vm.ByTenant, tenantAgingFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, agedAnalysisResponse{
		Filters:  filter.Filters(),
		Summary:  vm.Summary,
		ByTenant: rows,
		Table:    meta,
	})
}

// cachedAgedAnalysis serves the built view model from the in-process cache,
// collapsing concurrent builds for the same key.
func (h *Handler) cachedAgedAnalysis(ctx context.Context, filter reports.AsOfFilter, bypass bool) (AgedAnalysisVM, error) {
	key := buildViewCacheKey(reports.ReportAgedAnalysis, filter.Filters())
	if !bypass {
		if cached, ok := viewModelCache.Get(key); ok {
			if vm, ok := cached.(AgedAnalysisVM); ok {
				recordViewCacheHit(string(reports.ReportAgedAnalysis))
				return cloneAgedAnalysisVM(vm), nil
			}
		}
	}
	recordViewCacheMiss(string(reports.ReportAgedAnalysis))
	start := time.Now()
	built, err, _ := singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
		payload, err := h.service.AgedAnalysis(ctx, filter)
		if err != nil {
			return nil, err
		}
		return buildAgedAnalysisVM(payload), nil
	})
	if err != nil {
		return AgedAnalysisVM{}, err
	}
	vm := built.(AgedAnalysisVM)
	observeViewBuildDuration(string(reports.ReportAgedAnalysis), time.Since(start))
	viewModelCache.Set(key, cloneAgedAnalysisVM(vm))
	return vm, nil
}

type rentRollResponse struct {
	Filters map[string]string      `json:"filters"`
	Rows    []reports.PropertyRent `json:"rows"`
	Table   tableMeta              `json:"table"`
}

func (h *Handler) handleRentRoll(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseAsOfFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportRentRoll, filter.Filters())

	properties, err := h.service.RentRoll(ctx, filter)
	if err != nil {
		h.respondServerError(w, "load rent roll", err)
		return
	}
	rows, meta := paginate(properties, propertyRentFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, rentRollResponse{
		Filters: filter.Filters(),
		Rows:    rows,
		Table:   meta,
	})
}

type rentRollLeasesResponse struct {
	Filters     map[string]string   `json:"filters"`
	Breadcrumbs []reports.Crumb     `json:"breadcrumbs"`
	Rows        []reports.LeaseRent `json:"rows"`
	Table       tableMeta           `json:"table"`
}

func (h *Handler) handleRentRollLeases(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "propertyID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	filter, err := h.parseAsOfFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	nav, err := drillPath(r, "Rent Roll", drillHop{keyName: "property_id", id: propertyID, labelParam: "property_label", fallback: "Property"})
	if err != nil {
		h.respondFilterError(w, err)
		return
	}

	h.invalidateIfRequested(ctx, r, reports.ReportRentRollLeases, nav.ActiveQuery(reports.ReportRentRollLeases, filter.Filters()).Filters)

	leases, err := h.service.RentRollLeases(ctx, propertyID, filter.AsOf)
	if err != nil {
		h.respondServerError(w, "load rent roll leases", err)
		return
	}
	rows, meta := paginate(leases, leaseRentFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, rentRollLeasesResponse{
		Filters:     filter.Filters(),
		Breadcrumbs: nav.Breadcrumbs(),
		Rows:        rows,
		Table:       meta,
	})
}

type trialBalanceResponse struct {
	Filters map[string]string `json:"filters"`
	Report  TrialBalanceVM    `json:"report"`
	Table   tableMeta         `json:"table"`
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportTrialBalance, filter.Filters())

	tb, err := h.service.TrialBalance(ctx, filter)
	if err != nil {
		h.respondServerError(w, "load trial balance", err)
		return
	}
	vm := buildTrialBalanceVM(tb)
	lines, meta := paginate(vm.Lines, trialBalanceLineFields, parseTableParams(r))
	vm.Lines = lines
	httpx.JSON(w, http.StatusOK, trialBalanceResponse{
		Filters: filter.Filters(),
		Report:  vm,
		Table:   meta,
	})
}

type incomeStatementResponse struct {
	Filters map[string]string `json:"filters"`
	Report  IncomeStatementVM `json:"report"`
	Table   tableMeta         `json:"table"`
}

func (h *Handler) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportIncomeStatement, filter.Filters())

	st, err := h.service.IncomeStatement(ctx, filter)
	if err != nil {
		h.respondServerError(w, "load income statement", err)
		return
	}
	vm := buildIncomeStatementVM(st)
	lines, meta := paginate(vm.Lines, incomeStatementLineFields, parseTableParams(r))
	vm.Lines = lines
	httpx.JSON(w, http.StatusOK, incomeStatementResponse{
		Filters: filter.Filters(),
		Report:  vm,
		Table:   meta,
	})
}
