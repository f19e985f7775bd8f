package landlords

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/parklane-pm/parklane/internal/platform/httpx"
	"github.com/parklane-pm/parklane/internal/shared"
)

// Handler exposes the landlord CRUD endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the landlord handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the landlord routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/landlords", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

type listResponse struct {
	Items      []Landlord        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// List returns landlords with search and pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filters := shared.ListFilters{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(q.Get("search")),
	}

	landlords, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list landlords failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if landlords == nil {
		landlords = []Landlord{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{
		Items:      landlords,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	})
}

// Get returns one landlord.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	landlord, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, landlord)
}

// Create stores a new landlord.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input LandlordInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return
	}
	landlord, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create landlord failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, landlord)
}

// Update applies changes to a landlord.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input LandlordInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return
	}
	if err := h.service.Update(r.Context(), id, input); err != nil {
		h.logger.Error("update landlord failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	landlord, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, landlord)
}

// Delete removes a landlord.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete landlord failed", slog.Any("error", err), slog.Int64("id", id))
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
