package intake

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harrowdigital/printdesk-backend/internal/mailer"
	"github.com/harrowdigital/printdesk-backend/internal/requests"
	"github.com/harrowdigital/printdesk-backend/pkg/db"
	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/enums"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

// ProvisionFailedSentinel is recorded as the upload location when folder
// creation fails. Submissions still go through; the sentinel tells staff the
// student has nowhere to upload.
const ProvisionFailedSentinel = "Folder creation failed"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FolderProvisioner creates the per-reference upload location.
type FolderProvisioner interface {
	CreateFolder(ctx context.Context, name string) (string, error)
}

// ReceiptSender dispatches the submission receipt.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, receipt mailer.Receipt) error
}

// Service handles order intake.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

// ServiceParams wire intake dependencies.
type ServiceParams struct {
	Logger  *logger.Logger
	Repo    requests.Repository
	Folders FolderProvisioner
	Mailer  ReceiptSender
}

type service struct {
	logg    *logger.Logger
	repo    requests.Repository
	folders FolderProvisioner
	mailer  ReceiptSender
	now     func() time.Time
}

// NewService builds the intake service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if params.Folders == nil {
		return nil, fmt.Errorf("folder provisioner required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{
		logg:    params.Logger,
		repo:    params.Repo,
		folders: params.Folders,
		mailer:  params.Mailer,
		now:     time.Now,
	}, nil
}

// Submit runs the intake pipeline: validate, provision the upload folder
// (best effort), persist the row, send the receipt (best effort). Only
// validation and persistence failures abort the submission.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ctx = s.logg.WithReference(ctx, req.ReferenceNumber)

	folderURL, err := s.folders.CreateFolder(ctx, req.ReferenceNumber)
	if err != nil {
		s.logg.Error(ctx, "upload folder creation failed; continuing without folder", err)
		folderURL = ProvisionFailedSentinel
	}

	record := s.buildRecord(req, folderURL)
	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "idx_print_requests_reference") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "reference number already submitted")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist print request")
	}

	notified := true
	receipt := mailer.Receipt{
		Reference:       req.ReferenceNumber,
		FirstName:       req.FirstName,
		Surname:         req.Surname,
		Email:           req.Email,
		StudentID:       req.UniversityID,
		Course:          req.Course,
		PrintSize:       req.PrintSize,
		PrintDimensions: req.PrintDimensions,
		PaperType:       req.PaperType,
		Quantity:        req.Quantity,
		Price:           record.EstimatedPrice,
		Notes:           req.Notes,
	}
	if err := s.mailer.SendReceipt(ctx, receipt); err != nil {
		s.logg.Error(ctx, "receipt email failed; submission already persisted", err)
		notified = false
	}

	return &SubmitResult{
		Reference:        record.Reference,
		UploadFolderURL:  record.UploadLocation,
		Status:           record.Status.String(),
		NotificationSent: notified,
	}, nil
}

func (s *service) buildRecord(req SubmitRequest, folderURL string) *models.PrintRequest {
	submittedAt := s.now()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			submittedAt = parsed
		}
	}

	price := "£" + decimal.NewFromFloat(req.TotalPrice).StringFixed(2)

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	return &models.PrintRequest{
		Reference:      req.ReferenceNumber,
		Status:         enums.RequestStatusNew,
		UploadLocation: folderURL,
		SubmittedAt:    requests.FormatTimestamp(submittedAt),
		FirstName:      req.FirstName,
		Surname:        req.Surname,
		Email:          req.Email,
		StudentID:      req.UniversityID,
		Course:         req.Course,
		PrintSize:      req.PrintSize,
		PaperType:      req.PaperType,
		PaperCategory:  req.PaperCategory,
		Quantity:       req.Quantity,
		EstimatedPrice: price,
		DPICheck:       req.CheckDpi,
		RGBCheck:       req.CheckRgb,
		FlattenedCheck: req.CheckFlattened,
		Notes:          notes,
	}
}

func validate(req SubmitRequest) error {
	required := map[string]string{
		"referenceNumber": req.ReferenceNumber,
		"firstName":       req.FirstName,
		"surname":         req.Surname,
		"email":           req.Email,
		"universityId":    req.UniversityID,
		"course":          req.Course,
		"printSize":       req.PrintSize,
		"paperType":       req.PaperType,
	}
	for field, value := range required {
		if value == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing required field: %s", field))
		}
	}
	if !emailPattern.MatchString(req.Email) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid email format")
	}
	if req.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive number")
	}
	return nil
}
