package controllers

import (
	"context"
	"net/http"

	"github.com/harrowdigital/printdesk-backend/api/responses"
	"github.com/harrowdigital/printdesk-backend/pkg/config"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

// Pinger is the health-check surface of a datasource.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PrintDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered datasource answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, sources map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PrintDesk-Env", cfg.App.Env)
		for name, source := range sources {
			if source == nil {
				continue
			}
			if err := source.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
