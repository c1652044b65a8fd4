package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrowdigital/printdesk-backend/internal/intake"
	"github.com/harrowdigital/printdesk-backend/internal/status"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
	"github.com/harrowdigital/printdesk-backend/pkg/types"
)

type fakeIntake struct {
	result *intake.SubmitResult
	err    error
	got    intake.SubmitRequest
}

func (f *fakeIntake) Submit(ctx context.Context, req intake.SubmitRequest) (*intake.SubmitResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStatus struct {
	detail *status.RequestDetail
	result *status.StatusResult
	err    error

	reference string
	setReq    status.SetStatusRequest
	notesReq  status.TechnicianNotesRequest
}

func (f *fakeStatus) Find(ctx context.Context, reference string) (*status.RequestDetail, error) {
	f.reference = reference
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeStatus) SetStatus(ctx context.Context, reference string, req status.SetStatusRequest) (*status.StatusResult, error) {
	f.reference = reference
	f.setReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeStatus) MarkReady(ctx context.Context, reference string) (*status.StatusResult, error) {
	f.reference = reference
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeStatus) SetTechnicianNotes(ctx context.Context, reference string, req status.TechnicianNotesRequest) (*status.RequestDetail, error) {
	f.reference = reference
	f.notesReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func referenceRouter(pattern string, h http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Handle(pattern, h)
	return r
}

func TestSubmitPrintRequestCreated(t *testing.T) {
	svc := &fakeIntake{result: &intake.SubmitResult{
		Reference:        "HP-1",
		UploadFolderURL:  "https://storage.googleapis.com/print-uploads/HP-1/",
		Status:           "New",
		NotificationSent: true,
	}}
	handler := SubmitPrintRequest(svc, quietLogger())

	body := `{"referenceNumber":"HP-1","firstName":"Amira","surname":"Khan","email":"amira@my.westminster.ac.uk","universityId":"w1","course":"BA Photography","printSize":"A2","paperType":"Matte","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "HP-1", svc.got.ReferenceNumber)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "New", data["status"])
	assert.Equal(t, true, data["notificationSent"])
}

func TestSubmitPrintRequestRejectsBadBody(t *testing.T) {
	handler := SubmitPrintRequest(&fakeIntake{}, quietLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(`{"quantity":0}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPrintRequestPassesReference(t *testing.T) {
	svc := &fakeStatus{detail: &status.RequestDetail{Reference: "HP-1", Status: "Processing"}}
	router := referenceRouter("/requests/{reference}", GetPrintRequest(svc, quietLogger()))

	req := httptest.NewRequest(http.MethodGet, "/requests/HP-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HP-1", svc.reference)
}

func TestGetPrintRequestNotFound(t *testing.T) {
	svc := &fakeStatus{err: pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")}
	router := referenceRouter("/requests/{reference}", GetPrintRequest(svc, quietLogger()))

	req := httptest.NewRequest(http.MethodGet, "/requests/HP-404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetPrintRequestStatus(t *testing.T) {
	svc := &fakeStatus{result: &status.StatusResult{Reference: "HP-1", Status: "Collected"}}
	router := referenceRouter("/requests/{reference}/status", SetPrintRequestStatus(svc, quietLogger()))

	req := httptest.NewRequest(http.MethodPost, "/requests/HP-1/status", bytes.NewBufferString(`{"status":"Collected"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Collected", svc.setReq.Status)
}

func TestMarkPrintRequestReady(t *testing.T) {
	sent := true
	ready := "29/08/2026 14:45"
	svc := &fakeStatus{result: &status.StatusResult{
		Reference:        "HP-1",
		Status:           "Ready for Collection",
		ReadyDate:        &ready,
		NotificationSent: &sent,
	}}
	router := referenceRouter("/requests/{reference}/ready", MarkPrintRequestReady(svc, quietLogger()))

	req := httptest.NewRequest(http.MethodPost, "/requests/HP-1/ready", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "Ready for Collection", data["status"])
	assert.Equal(t, true, data["notificationSent"])
}

func TestSetTechnicianNotes(t *testing.T) {
	notes := "cut to size"
	svc := &fakeStatus{detail: &status.RequestDetail{Reference: "HP-1", TechnicianNotes: &notes}}
	router := referenceRouter("/requests/{reference}/technician-notes", SetTechnicianNotes(svc, quietLogger()))

	req := httptest.NewRequest(http.MethodPut, "/requests/HP-1/technician-notes", bytes.NewBufferString(`{"notes":"cut to size"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cut to size", svc.notesReq.Notes)
}
