package requests

import (
	"context"

	"gorm.io/gorm"

	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/enums"
)

// DeletedSentinelPrefix marks an upload location whose backing folder has been
// reclaimed. The transition is one-way: the sweep never revisits these rows.
const DeletedSentinelPrefix = "Deleted"

// Repository exposes persistence helpers for print requests. References are
// the sole lookup key; callers must treat gorm.ErrRecordNotFound as a normal
// outcome on FindByReference.
type Repository interface {
	Create(ctx context.Context, request *models.PrintRequest) error
	FindByReference(ctx context.Context, reference string) (*models.PrintRequest, error)
	UpdateStatus(ctx context.Context, reference string, status enums.RequestStatus, readyDate *string) (int64, error)
	UpdateUploadLocation(ctx context.Context, reference string, value string) (int64, error)
	UpdateTechnicianNotes(ctx context.Context, reference string, notes *string) (int64, error)
	FindCleanupCandidates(ctx context.Context) ([]models.PrintRequest, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a print-request repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, request *models.PrintRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repositoryImpl) FindByReference(ctx context.Context, reference string) (*models.PrintRequest, error) {
	var request models.PrintRequest
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, reference string, status enums.RequestStatus, readyDate *string) (int64, error) {
	updates := map[string]any{"status": status}
	if readyDate != nil {
		updates["ready_date"] = *readyDate
	}
	result := r.db.WithContext(ctx).
		Model(&models.PrintRequest{}).
		Where("reference = ?", reference).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) UpdateUploadLocation(ctx context.Context, reference string, value string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PrintRequest{}).
		Where("reference = ?", reference).
		UpdateColumn("upload_location", value)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) UpdateTechnicianNotes(ctx context.Context, reference string, notes *string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PrintRequest{}).
		Where("reference = ?", reference).
		UpdateColumn("technician_notes", notes)
	return result.RowsAffected, result.Error
}

// FindCleanupCandidates returns collected rows that still have a ready date
// and an unreclaimed upload location, newest first for log readability.
func (r *repositoryImpl) FindCleanupCandidates(ctx context.Context) ([]models.PrintRequest, error) {
	var rows []models.PrintRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.RequestStatusCollected).
		Where("ready_date IS NOT NULL AND ready_date <> ''").
		Where("upload_location NOT LIKE ?", DeletedSentinelPrefix+"%").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
