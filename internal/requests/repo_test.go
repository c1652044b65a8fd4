package requests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	"github.com/harrowdigital/printdesk-backend/pkg/enums"
)

func setupRequestsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:requests_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS print_requests (
  id TEXT PRIMARY KEY,
  reference TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'New',
  upload_location TEXT NOT NULL DEFAULT '',
  submitted_at TEXT NOT NULL,
  first_name TEXT NOT NULL,
  surname TEXT NOT NULL,
  email TEXT NOT NULL,
  student_id TEXT NOT NULL,
  course TEXT NOT NULL,
  print_size TEXT NOT NULL,
  paper_type TEXT NOT NULL,
  paper_category TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  estimated_price TEXT NOT NULL DEFAULT '',
  dpi_check BOOLEAN NOT NULL DEFAULT 0,
  rgb_check BOOLEAN NOT NULL DEFAULT 0,
  flattened_check BOOLEAN NOT NULL DEFAULT 0,
  notes TEXT,
  ready_date TEXT,
  technician_notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedRow(t *testing.T, repo Repository, reference string, status enums.RequestStatus, readyDate *string, location string) {
	t.Helper()

	row := &models.PrintRequest{
		ID:             uuid.New(),
		Reference:      reference,
		Status:         status,
		UploadLocation: location,
		SubmittedAt:    "01/07/2026 09:30:00",
		FirstName:      "Amira",
		Surname:        "Khan",
		Email:          "amira.khan@my.westminster.ac.uk",
		StudentID:      "w1234567",
		Course:         "BA Photography",
		PrintSize:      "A2",
		PaperType:      "Matte 200gsm",
		Quantity:       2,
		ReadyDate:      readyDate,
	}
	require.NoError(t, repo.Create(context.Background(), row))
}

func strPtr(s string) *string { return &s }

func TestFindCleanupCandidatesFiltersRows(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	folderURL := "https://storage.googleapis.com/print-uploads/"
	seedRow(t, repo, "HP-1", enums.RequestStatusCollected, strPtr("01/08/2026 10:00"), folderURL+"HP-1/")
	seedRow(t, repo, "HP-2", enums.RequestStatusCollected, strPtr("01/08/2026 10:00"), "Deleted - 05/08/2026")
	seedRow(t, repo, "HP-3", enums.RequestStatusReady, strPtr("01/08/2026 10:00"), folderURL+"HP-3/")
	seedRow(t, repo, "HP-4", enums.RequestStatusCollected, nil, folderURL+"HP-4/")
	seedRow(t, repo, "HP-5", enums.RequestStatusCollected, strPtr(""), folderURL+"HP-5/")

	rows, err := repo.FindCleanupCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "HP-1", rows[0].Reference)
}

func TestCleanupCandidatesExcludeReclaimedRows(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRow(t, repo, "HP-9", enums.RequestStatusCollected, strPtr("01/08/2026 10:00"),
		"https://storage.googleapis.com/print-uploads/HP-9/")

	rows, err := repo.FindCleanupCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	stamp := time.Date(2026, 8, 20, 3, 0, 0, 0, time.UTC)
	affected, err := repo.UpdateUploadLocation(ctx, "HP-9", DeletedSentinel(stamp))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err = repo.FindCleanupCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
