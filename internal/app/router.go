package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/parklane-pm/parklane/internal/landlords"
	"github.com/parklane-pm/parklane/internal/leases"
	"github.com/parklane-pm/parklane/internal/observability"
	reporthttp "github.com/parklane-pm/parklane/internal/reports/http"
	"github.com/parklane-pm/parklane/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ReportHandler   *reporthttp.Handler
	LeaseHandler    *leases.Handler
	LandlordHandler *landlords.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Parklane defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.ReportHandler != nil {
		params.ReportHandler.MountRoutes(r)
	}
	if params.LeaseHandler != nil {
		params.LeaseHandler.MountRoutes(r)
	}
	if params.LandlordHandler != nil {
		params.LandlordHandler.MountRoutes(r)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
