package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/enums"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

type fakeCleanupRepo struct {
	candidates []models.PrintRequest
	queryErr   error

	marked    map[string]string
	markedErr error
}

func (f *fakeCleanupRepo) FindCleanupCandidates(ctx context.Context) ([]models.PrintRequest, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.candidates, nil
}

func (f *fakeCleanupRepo) UpdateUploadLocation(ctx context.Context, reference string, value string) (int64, error) {
	if f.markedErr != nil {
		return 0, f.markedErr
	}
	if f.marked == nil {
		f.marked = map[string]string{}
	}
	f.marked[reference] = value
	return 1, nil
}

type fakeUploadStore struct {
	deleted   []string
	deleteErr error
}

func (f *fakeUploadStore) PrefixFromURL(raw string) (string, bool) {
	const base = "https://storage.googleapis.com/print-uploads/"
	if !strings.HasPrefix(raw, base) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(raw, base), "/"), true
}

func (f *fakeUploadStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, prefix)
	return 3, nil
}

func cronTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func collectedRow(reference, readyDate string) models.PrintRequest {
	ready := readyDate
	return models.PrintRequest{
		Reference:      reference,
		Status:         enums.RequestStatusCollected,
		UploadLocation: "https://storage.googleapis.com/print-uploads/" + reference + "/",
		ReadyDate:      &ready,
	}
}

func newCleanupJob(t *testing.T, repo *fakeCleanupRepo, store *fakeUploadStore, at time.Time) Job {
	t.Helper()
	job, err := NewUploadCleanupJob(UploadCleanupJobParams{
		Logger:        cronTestLogger(),
		Repo:          repo,
		Store:         store,
		RetentionDays: 14,
	})
	require.NoError(t, err)
	job.(*uploadCleanupJob).now = func() time.Time { return at }
	return job
}

func TestUploadCleanupReclaimsExpiredRows(t *testing.T) {
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{
		collectedRow("HP-OLD", "01/08/2026 10:00"),
		collectedRow("HP-FRESH", "20/08/2026 10:00"),
	}}
	store := &fakeUploadStore{}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, []string{"HP-OLD"}, store.deleted)
	require.Contains(t, repo.marked, "HP-OLD")
	assert.Equal(t, "Deleted - 29/08/2026", repo.marked["HP-OLD"])
	assert.NotContains(t, repo.marked, "HP-FRESH")
}

func TestUploadCleanupSkipsUnparseableReadyDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{
		collectedRow("HP-BAD", "sometime in July"),
		collectedRow("HP-OLD", "01/08/2026 10:00"),
	}}
	store := &fakeUploadStore{}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.NotContains(t, repo.marked, "HP-BAD")
	assert.Contains(t, repo.marked, "HP-OLD")
}

func TestUploadCleanupMarksRowWhenDeletionFails(t *testing.T) {
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{
		collectedRow("HP-OLD", "01/08/2026 10:00"),
	}}
	store := &fakeUploadStore{deleteErr: errors.New("bucket unreachable")}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, "Deleted - 29/08/2026", repo.marked["HP-OLD"])
}

func TestUploadCleanupMarksRowWithForeignLocation(t *testing.T) {
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	row := collectedRow("HP-OLD", "01/08/2026 10:00")
	row.UploadLocation = "Folder creation failed"
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{row}}
	store := &fakeUploadStore{}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.Empty(t, store.deleted)
	assert.Equal(t, "Deleted - 29/08/2026", repo.marked["HP-OLD"])
}

func TestUploadCleanupLeavesReclaimedRowsAlone(t *testing.T) {
	now := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	row := collectedRow("HP-DONE", "01/08/2026 10:00")
	row.UploadLocation = "Deleted - 20/08/2026"
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{row}}
	store := &fakeUploadStore{}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.Empty(t, store.deleted)
	assert.NotContains(t, repo.marked, "HP-DONE")
}

func TestUploadCleanupBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	repo := &fakeCleanupRepo{candidates: []models.PrintRequest{
		collectedRow("HP-EXACT", "15/08/2026 10:00"),
	}}
	store := &fakeUploadStore{}
	job := newCleanupJob(t, repo, store, now)

	require.NoError(t, job.Run(context.Background()))

	assert.Contains(t, repo.marked, "HP-EXACT", "exactly 14 days old is eligible")
}

func TestUploadCleanupQueryFailure(t *testing.T) {
	repo := &fakeCleanupRepo{queryErr: errors.New("connection refused")}
	job := newCleanupJob(t, repo, &fakeUploadStore{}, time.Now())

	require.Error(t, job.Run(context.Background()))
}
