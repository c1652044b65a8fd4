package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harrowdigital/printdesk-backend/api/controllers"
	"github.com/harrowdigital/printdesk-backend/api/middleware"
	"github.com/harrowdigital/printdesk-backend/internal/intake"
	"github.com/harrowdigital/printdesk-backend/internal/status"
	"github.com/harrowdigital/printdesk-backend/pkg/config"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

// RouterParams collect everything the HTTP surface depends on.
type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	IntakeService intake.Service
	StatusService status.Service
	Pingers       map[string]controllers.Pinger
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.Pingers))
	})

	r.Route("/api/v1/requests", func(r chi.Router) {
		r.Post("/", controllers.SubmitPrintRequest(params.IntakeService, logg))
		r.Route("/{reference}", func(r chi.Router) {
			r.Get("/", controllers.GetPrintRequest(params.StatusService, logg))
			r.Post("/status", controllers.SetPrintRequestStatus(params.StatusService, logg))
			r.Post("/ready", controllers.MarkPrintRequestReady(params.StatusService, logg))
			r.Put("/technician-notes", controllers.SetTechnicianNotes(params.StatusService, logg))
		})
	})

	return r
}
