package status

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/harrowdigital/printdesk-backend/internal/requests"
	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/enums"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

// ReadySender dispatches the collection notice.
type ReadySender interface {
	SendReady(ctx context.Context, order *models.PrintRequest) error
}

// Service exposes the operator-facing lifecycle operations.
type Service interface {
	Find(ctx context.Context, reference string) (*RequestDetail, error)
	SetStatus(ctx context.Context, reference string, req SetStatusRequest) (*StatusResult, error)
	MarkReady(ctx context.Context, reference string) (*StatusResult, error)
	SetTechnicianNotes(ctx context.Context, reference string, req TechnicianNotesRequest) (*RequestDetail, error)
}

// ServiceParams wire status dependencies.
type ServiceParams struct {
	Logger *logger.Logger
	Repo   requests.Repository
	Mailer ReadySender
}

type service struct {
	logg   *logger.Logger
	repo   requests.Repository
	mailer ReadySender
	now    func() time.Time
}

// NewService builds the status service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{
		logg:   params.Logger,
		repo:   params.Repo,
		mailer: params.Mailer,
		now:    time.Now,
	}, nil
}

func (s *service) Find(ctx context.Context, reference string) (*RequestDetail, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference number required")
	}
	row, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load print request")
	}
	return toDetail(row), nil
}

// SetStatus applies an operator-chosen status. Any transition between valid
// statuses is allowed; staff correct mistakes by moving backwards. Setting
// the ready status stamps (or restamps) the ready date but sends no email.
func (s *service) SetStatus(ctx context.Context, reference string, req SetStatusRequest) (*StatusResult, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference number required")
	}
	parsed, err := enums.ParseRequestStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", req.Status))
	}

	ctx = s.logg.WithReference(ctx, reference)

	var readyDate *string
	if parsed == enums.RequestStatusReady {
		stamp := requests.FormatReadyDate(s.now())
		readyDate = &stamp
	}

	affected, err := s.repo.UpdateStatus(ctx, reference, parsed, readyDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")
	}

	s.logg.Info(ctx, fmt.Sprintf("status set to %s", parsed))
	return &StatusResult{
		Reference: reference,
		Status:    parsed.String(),
		ReadyDate: readyDate,
	}, nil
}

// MarkReady moves the request to the ready status and emails the student.
// The status and ready date are persisted before the email goes out, so a
// mail failure never leaves the row behind; the result reports whether the
// notification was actually sent.
func (s *service) MarkReady(ctx context.Context, reference string) (*StatusResult, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference number required")
	}

	ctx = s.logg.WithReference(ctx, reference)

	row, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load print request")
	}

	stamp := requests.FormatReadyDate(s.now())
	if _, err := s.repo.UpdateStatus(ctx, reference, enums.RequestStatusReady, &stamp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}
	row.Status = enums.RequestStatusReady
	row.ReadyDate = &stamp

	notified := true
	if err := s.mailer.SendReady(ctx, row); err != nil {
		s.logg.Error(ctx, "ready email failed; status already persisted", err)
		notified = false
	}

	return &StatusResult{
		Reference:        reference,
		Status:           enums.RequestStatusReady.String(),
		ReadyDate:        &stamp,
		NotificationSent: &notified,
	}, nil
}

// SetTechnicianNotes replaces the technician notes. Empty input clears them.
func (s *service) SetTechnicianNotes(ctx context.Context, reference string, req TechnicianNotesRequest) (*RequestDetail, error) {
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference number required")
	}

	ctx = s.logg.WithReference(ctx, reference)

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	affected, err := s.repo.UpdateTechnicianNotes(ctx, reference, notes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update technician notes")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")
	}

	row, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload print request")
	}
	return toDetail(row), nil
}

func toDetail(row *models.PrintRequest) *RequestDetail {
	return &RequestDetail{
		Reference:       row.Reference,
		Status:          row.Status.String(),
		UploadLocation:  row.UploadLocation,
		SubmittedAt:     row.SubmittedAt,
		FirstName:       row.FirstName,
		Surname:         row.Surname,
		Email:           row.Email,
		StudentID:       row.StudentID,
		Course:          row.Course,
		PrintSize:       row.PrintSize,
		PaperType:       row.PaperType,
		PaperCategory:   row.PaperCategory,
		Quantity:        row.Quantity,
		EstimatedPrice:  row.EstimatedPrice,
		DPICheck:        row.DPICheck,
		RGBCheck:        row.RGBCheck,
		FlattenedCheck:  row.FlattenedCheck,
		Notes:           row.Notes,
		ReadyDate:       row.ReadyDate,
		TechnicianNotes: row.TechnicianNotes,
	}
}
