package reporthttp

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parklane-pm/parklane/internal/platform/httpx"
	"github.com/parklane-pm/parklane/internal/reports"
)

// drillHop describes one descent of a hierarchical report: the parent key it
// carries and where its breadcrumb label comes from.
type drillHop struct {
	keyName    string
	keyValue   string
	id         int64
	labelParam string
	fallback   string
}

// drillPath reconstructs the navigator for the requested drill depth so the
// response can echo breadcrumbs and the accumulated parent keys.
func drillPath(r *http.Request, rootLabel string, hops ...drillHop) (*reports.Navigator, error) {
	nav := reports.NewNavigator(rootLabel)
	for _, hop := range hops {
		value := hop.keyValue
		if value == "" {
			value = strconv.FormatInt(hop.id, 10)
		}
		label := strings.TrimSpace(r.URL.Query().Get(hop.labelParam))
		if label == "" {
			label = hop.fallback + " " + value
		}
		if err := nav.DrillDown(label, map[string]string{hop.keyName: value}); err != nil {
			return nil, err
		}
	}
	return nav, nil
}

type bankToIncomeResponse struct {
	Filters map[string]string `json:"filters"`
	Report  BankIncomeVM      `json:"report"`
}

func (h *Handler) handleBankToIncome(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportBankToIncome, filter.Filters())

	vm, err := h.cachedBankToIncome(ctx, filter, refetchRequested(r))
	if err != nil {
		h.respondServerError(w, "load bank to income", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bankToIncomeResponse{
		Filters: filter.Filters(),
		Report:  vm,
	})
}

func (h *Handler) cachedBankToIncome(ctx context.Context, filter reports.RangeFilter, bypass bool) (BankIncomeVM, error) {
	key := buildViewCacheKey(reports.ReportBankToIncome, filter.Filters())
	if !bypass {
		if cached, ok := viewModelCache.Get(key); ok {
			if vm, ok := cached.(BankIncomeVM); ok {
				recordViewCacheHit(string(reports.ReportBankToIncome))
				return cloneBankIncomeVM(vm), nil
			}
		}
	}
	recordViewCacheMiss(string(reports.ReportBankToIncome))
	start := time.Now()
	built, err, _ := singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
		matrix, err := h.service.BankToIncome(ctx, filter)
		if err != nil {
			return nil, err
		}
		return buildBankIncomeVM(matrix), nil
	})
	if err != nil {
		return BankIncomeVM{}, err
	}
	vm := built.(BankIncomeVM)
	observeViewBuildDuration(string(reports.ReportBankToIncome), time.Since(start))
	viewModelCache.Set(key, cloneBankIncomeVM(vm))
	return vm, nil
}

type bankIncomeDetailResponse struct {
	Filters     map[string]string    `json:"filters"`
	Breadcrumbs []reports.Crumb      `json:"breadcrumbs"`
	Rows        []reports.IncomeLine `json:"rows"`
	Table       tableMeta            `json:"table"`
}

func (h *Handler) handleBankIncomeDetail(w http.ResponseWriter, r *http.Request) {
	bankAccountID, err := pathID(r, "bankAccountID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	nav, err := drillPath(r, "Bank to Income",
		drillHop{keyName: "bank_account_id", id: bankAccountID, labelParam: "bank_label", fallback: "Account"})
	if err != nil {
		h.respondFilterError(w, err)
		return
	}

	h.invalidateIfRequested(ctx, r, reports.ReportBankIncomeDetail, nav.ActiveQuery(reports.ReportBankIncomeDetail, filter.Filters()).Filters)

	lines, err := h.service.BankIncomeDetail(ctx, bankAccountID, filter)
	if err != nil {
		h.respondServerError(w, "load bank income detail", err)
		return
	}
	rows, meta := paginate(lines, incomeLineFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, bankIncomeDetailResponse{
		Filters:     filter.Filters(),
		Breadcrumbs: nav.Breadcrumbs(),
		Rows:        rows,
		Table:       meta,
	})
}

type bankIncomeReceiptsResponse struct {
	Filters     map[string]string `json:"filters"`
	Breadcrumbs []reports.Crumb   `json:"breadcrumbs"`
	Rows        []reports.Receipt `json:"rows"`
	Table       tableMeta         `json:"table"`
}

func (h *Handler) handleBankIncomeReceipts(w http.ResponseWriter, r *http.Request) {
	bankAccountID, err := pathID(r, "bankAccountID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	incomeType := strings.TrimSpace(chi.URLParam(r, "incomeType"))
	if incomeType == "" {
		h.respondFilterError(w, paramError{"incomeType"})
		return
	}
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	nav, err := drillPath(r, "Bank to Income",
		drillHop{keyName: "bank_account_id", id: bankAccountID, labelParam: "bank_label", fallback: "Account"},
		drillHop{keyName: "income_type", keyValue: incomeType, labelParam: "income_label", fallback: "Income"})
	if err != nil {
		h.respondFilterError(w, err)
		return
	}

	h.invalidateIfRequested(ctx, r, reports.ReportBankIncomeReceipts, nav.ActiveQuery(reports.ReportBankIncomeReceipts, filter.Filters()).Filters)

	receipts, err := h.service.BankIncomeReceipts(ctx, bankAccountID, incomeType, filter)
	if err != nil {
		h.respondServerError(w, "load bank income receipts", err)
		return
	}
	rows, meta := paginate(receipts, receiptFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, bankIncomeReceiptsResponse{
		Filters:     filter.Filters(),
		Breadcrumbs: nav.Breadcrumbs(),
		Rows:        rows,
		Table:       meta,
	})
}

type commissionsResponse struct {
	Filters map[string]string            `json:"filters"`
	Rows    []reports.PropertyCommission `json:"rows"`
	Table   tableMeta                    `json:"table"`
}

func (h *Handler) handleCommissions(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.invalidateIfRequested(ctx, r, reports.ReportCommissionByProperty, filter.Filters())

	properties, err := h.service.CommissionByProperty(ctx, filter)
	if err != nil {
		h.respondServerError(w, "load commissions", err)
		return
	}
	rows, meta := paginate(properties, propertyCommissionFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, commissionsResponse{
		Filters: filter.Filters(),
		Rows:    rows,
		Table:   meta,
	})
}

type commissionLeasesResponse struct {
	Filters     map[string]string         `json:"filters"`
	Breadcrumbs []reports.Crumb           `json:"breadcrumbs"`
	Rows        []reports.LeaseCommission `json:"rows"`
	Table       tableMeta                 `json:"table"`
}

func (h *Handler) handleCommissionLeases(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "propertyID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	nav, err := drillPath(r, "Commission by Property",
		drillHop{keyName: "property_id", id: propertyID, labelParam: "property_label", fallback: "Property"})
	if err != nil {
		h.respondFilterError(w, err)
		return
	}

	h.invalidateIfRequested(ctx, r, reports.ReportCommissionLeases, nav.ActiveQuery(reports.ReportCommissionLeases, filter.Filters()).Filters)

	leases, err := h.service.CommissionLeases(ctx, propertyID, filter)
	if err != nil {
		h.respondServerError(w, "load commission leases", err)
		return
	}
	rows, meta := paginate(leases, leaseCommissionFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, commissionLeasesResponse{
		Filters:     filter.Filters(),
		Breadcrumbs: nav.Breadcrumbs(),
		Rows:        rows,
		Table:       meta,
	})
}

type commissionPaymentsResponse struct {
	Filters     map[string]string           `json:"filters"`
	Breadcrumbs []reports.Crumb             `json:"breadcrumbs"`
	Rows        []reports.CommissionPayment `json:"rows"`
	Table       tableMeta                   `json:"table"`
}

func (h *Handler) handleCommissionPayments(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "propertyID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	leaseID, err := pathID(r, "leaseID")
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	filter, err := h.parseRangeFilter(r)
	if err != nil {
		h.respondFilterError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	nav, err := drillPath(r, "Commission by Property",
		drillHop{keyName: "property_id", id: propertyID, labelParam: "property_label", fallback: "Property"},
		drillHop{keyName: "lease_id", id: leaseID, labelParam: "lease_label", fallback: "Lease"})
	if err != nil {
		h.respondFilterError(w, err)
		return
	}

	h.invalidateIfRequested(ctx, r, reports.ReportCommissionPayments, nav.ActiveQuery(reports.ReportCommissionPayments, filter.Filters()).Filters)

	payments, err := h.service.CommissionPayments(ctx, propertyID, leaseID, filter)
	if err != nil {
		h.respondServerError(w, "load commission payments", err)
		return
	}
	rows, meta := paginate(payments, commissionPaymentFields, parseTableParams(r))
	httpx.JSON(w, http.StatusOK, commissionPaymentsResponse{
		Filters:     filter.Filters(),
		Breadcrumbs: nav.Breadcrumbs(),
		Rows:        rows,
		Table:       meta,
	})
}
