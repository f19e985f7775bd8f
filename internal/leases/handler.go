package leases

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/parklane-pm/parklane/internal/platform/httpx"
	"github.com/parklane-pm/parklane/internal/shared"
)

// Handler exposes the lease CRUD endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the lease handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the lease routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/leases", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

type listResponse struct {
	Items      []Lease           `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// List returns leases with search and pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filters := shared.ListFilters{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(q.Get("search")),
	}

	leases, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list leases failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if leases == nil {
		leases = []Lease{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{
		Items:      leases,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

// Get returns one lease.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	lease, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lease)
}

// Create stores a new lease.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateLeaseInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return
	}
	lease, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create lease failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, lease)
}

// Update applies changes to a lease.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateLeaseInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return
	}
	if err := h.service.Update(r.Context(), id, input); err != nil {
		h.logger.Error("update lease failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	lease, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lease)
}

// Delete removes a lease.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete lease failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrValidation
	}
	return id, nil
}
