package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJobRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO export_jobs")).
		WithArgs("job-1", export.KindAttendanceDetail, export.StatusPending, pgxmock.AnyArg(), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	job, err := repo.Create(context.Background(), export.ReportJob{
		ID:          "job-1",
		Kind:        export.KindAttendanceDetail,
		Status:      export.StatusPending,
		Filters:     export.JobFilters{CompanyID: "company-1"},
		RequestedBy: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_GetByID(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	now := time.Now().UTC()
	filters := []byte(`{"company_id":"company-1","from":"2026-01-01"}`)
	rows := pgxmock.NewRows([]string{
		"id", "kind", "status", "filters", "requested_by", "result_path", "error_message", "created_at", "updated_at",
	}).AddRow("job-1", export.KindAttendanceDetail, export.StatusPending, filters, "user-1", nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM export_jobs")).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, export.StatusPending, job.Status)
	assert.Equal(t, "company-1", job.Filters.CompanyID)
	assert.Equal(t, "2026-01-01", job.Filters.From)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_GetByID_Missing(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM export_jobs")).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, export.ErrJobNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_MarkRunning_ClaimsPendingJob(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs")).
		WithArgs("job-1", export.StatusRunning, pgxmock.AnyArg(), export.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	taken, err := repo.MarkRunning(context.Background(), "job-1")
	require.NoError(t, err)
	assert.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_MarkRunning_AlreadyTaken(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs")).
		WithArgs("job-1", export.StatusRunning, pgxmock.AnyArg(), export.StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	taken, err := repo.MarkRunning(context.Background(), "job-1")
	require.NoError(t, err)
	assert.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_MarkReady(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs")).
		WithArgs("job-1", export.StatusReady, "exports/job-1.csv", pgxmock.AnyArg(), export.StatusRunning).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkReady(context.Background(), "job-1", "exports/job-1.csv"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_MarkReady_TerminalStateUntouched(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs")).
		WithArgs("job-1", export.StatusReady, "exports/job-1.csv", pgxmock.AnyArg(), export.StatusRunning).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.MarkReady(context.Background(), "job-1", "exports/job-1.csv")
	assert.ErrorIs(t, err, export.ErrJobNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepository_MarkError(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExportJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE export_jobs")).
		WithArgs("job-1", export.StatusError, "render failed", pgxmock.AnyArg(), export.StatusPending, export.StatusRunning).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkError(context.Background(), "job-1", "render failed"))
	require.NoError(t, mock.ExpectationsWereMet())
}
