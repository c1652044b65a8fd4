package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/harrowdigital/printdesk-backend/internal/requests"
	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

const defaultUploadRetentionDays = 14

// UploadStore reclaims upload folders. Satisfied by the GCS client.
type UploadStore interface {
	PrefixFromURL(raw string) (string, bool)
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type uploadCleanupRepo interface {
	FindCleanupCandidates(ctx context.Context) ([]models.PrintRequest, error)
	UpdateUploadLocation(ctx context.Context, reference string, value string) (int64, error)
}

// UploadCleanupJobParams configure the retention sweep.
type UploadCleanupJobParams struct {
	Logger        *logger.Logger
	Repo          uploadCleanupRepo
	Store         UploadStore
	RetentionDays int
}

// NewUploadCleanupJob builds the job that reclaims upload folders for
// collected orders past the retention window.
func NewUploadCleanupJob(params UploadCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("upload store required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultUploadRetentionDays
	}
	return &uploadCleanupJob{
		logg:          params.Logger,
		repo:          params.Repo,
		store:         params.Store,
		retentionDays: retention,
		now:           time.Now,
	}, nil
}

type uploadCleanupJob struct {
	logg          *logger.Logger
	repo          uploadCleanupRepo
	store         UploadStore
	retentionDays int
	now           func() time.Time
}

func (j *uploadCleanupJob) Name() string { return "upload-cleanup" }

// Run sweeps collected orders whose ready date is older than the retention
// window. Folder deletion is best effort; the sentinel is written regardless
// so a vanished or unparseable folder URL cannot keep a row in the sweep
// forever. Rows whose ready date fails to parse are skipped and left for
// staff to fix by hand.
func (j *uploadCleanupJob) Run(ctx context.Context) error {
	now := j.now()
	retention := time.Duration(j.retentionDays) * 24 * time.Hour

	rows, err := j.repo.FindCleanupCandidates(ctx)
	if err != nil {
		return fmt.Errorf("query cleanup candidates: %w", err)
	}

	var reclaimed, skipped, objectsDeleted int
	var sweepErr error
	for _, row := range rows {
		rowCtx := j.logg.WithReference(ctx, row.Reference)

		// The candidate query excludes reclaimed rows already; this guard
		// keeps a stale query result from restamping the sentinel date.
		if strings.HasPrefix(row.UploadLocation, requests.DeletedSentinelPrefix) {
			continue
		}

		readyAt, err := requests.ParseReadyDate(derefString(row.ReadyDate))
		if err != nil {
			j.logg.Warn(j.logg.WithField(rowCtx, "ready_date", derefString(row.ReadyDate)), "unparseable ready date; skipping row")
			skipped++
			continue
		}
		if now.Sub(readyAt) < retention {
			continue
		}

		if prefix, ok := j.store.PrefixFromURL(row.UploadLocation); ok {
			deleted, err := j.store.DeletePrefix(rowCtx, prefix)
			if err != nil {
				j.logg.Error(rowCtx, "upload folder deletion failed; marking row anyway", err)
			} else {
				objectsDeleted += deleted
			}
		}

		sentinel := requests.DeletedSentinel(now)
		if _, err := j.repo.UpdateUploadLocation(rowCtx, row.Reference, sentinel); err != nil {
			sweepErr = multierr.Append(sweepErr, fmt.Errorf("mark %s deleted: %w", row.Reference, err))
			continue
		}
		reclaimed++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"retention_days":  j.retentionDays,
		"candidates":      len(rows),
		"reclaimed":       reclaimed,
		"skipped":         skipped,
		"objects_deleted": objectsDeleted,
	})
	j.logg.Info(logCtx, "upload cleanup complete")
	return sweepErr
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
