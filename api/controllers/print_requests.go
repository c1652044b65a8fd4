package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harrowdigital/printdesk-backend/api/responses"
	"github.com/harrowdigital/printdesk-backend/api/validators"
	"github.com/harrowdigital/printdesk-backend/internal/intake"
	"github.com/harrowdigital/printdesk-backend/internal/status"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

// SubmitPrintRequest accepts a new order from the public form.
func SubmitPrintRequest(svc intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "intake service unavailable"))
			return
		}

		var req intake.SubmitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetPrintRequest returns one order by reference number.
func GetPrintRequest(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "status service unavailable"))
			return
		}

		detail, err := svc.Find(r.Context(), referenceParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// SetPrintRequestStatus applies an operator-chosen status.
func SetPrintRequestStatus(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "status service unavailable"))
			return
		}

		var req status.SetStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetStatus(r.Context(), referenceParam(r), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// MarkPrintRequestReady flips the order to ready and emails the student.
func MarkPrintRequestReady(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "status service unavailable"))
			return
		}

		result, err := svc.MarkReady(r.Context(), referenceParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SetTechnicianNotes replaces the technician notes on an order.
func SetTechnicianNotes(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "status service unavailable"))
			return
		}

		var req status.TechnicianNotesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.SetTechnicianNotes(r.Context(), referenceParam(r), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func referenceParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "reference"))
}
