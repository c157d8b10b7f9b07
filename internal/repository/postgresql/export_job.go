package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type exportJobRepository struct {
	db *database.DB
}

// Create implements export.JobRepository.
func (r *exportJobRepository) Create(ctx context.Context, job export.ReportJob) (export.ReportJob, error) {
	q := GetQuerier(ctx, r.db)

	filters, err := json.Marshal(job.Filters)
	if err != nil {
		return export.ReportJob{}, fmt.Errorf("failed to encode job filters: %w", err)
	}

	query := `
		INSERT INTO export_jobs (
			id, kind, status, filters, requested_by
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		job.ID,
		job.Kind,
		job.Status,
		filters,
		job.RequestedBy,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return export.ReportJob{}, fmt.Errorf("failed to create export job: %w", err)
	}

	return job, nil
}

// GetByID implements export.JobRepository.
func (r *exportJobRepository) GetByID(ctx context.Context, id string) (export.ReportJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, status, filters, requested_by, result_path, error_message, created_at, updated_at
		FROM export_jobs
		WHERE id = $1
	`

	var job export.ReportJob
	var filters []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Kind, &job.Status, &filters, &job.RequestedBy,
		&job.ResultPath, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return export.ReportJob{}, export.ErrJobNotFound
		}
		return export.ReportJob{}, fmt.Errorf("failed to get export job: %w", err)
	}

	if err := json.Unmarshal(filters, &job.Filters); err != nil {
		return export.ReportJob{}, fmt.Errorf("failed to decode job filters: %w", err)
	}

	return job, nil
}

// MarkRunning implements export.JobRepository. The conditional update is the
// idempotency guard: a job already running or finished is left untouched.
func (r *exportJobRepository) MarkRunning(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE export_jobs
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, id, export.StatusRunning, time.Now().UTC(), export.StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark export job running: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkReady implements export.JobRepository.
func (r *exportJobRepository) MarkReady(ctx context.Context, id, resultPath string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE export_jobs
		SET status = $2, result_path = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`

	tag, err := q.Exec(ctx, query, id, export.StatusReady, resultPath, time.Now().UTC(), export.StatusRunning)
	if err != nil {
		return fmt.Errorf("failed to mark export job ready: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return export.ErrJobNotFound
	}

	return nil
}

// MarkError implements export.JobRepository. Terminal states are never
// overwritten.
func (r *exportJobRepository) MarkError(ctx context.Context, id, message string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE export_jobs
		SET status = $2, error_message = $3, updated_at = $4
		WHERE id = $1 AND status IN ($5, $6)
	`

	tag, err := q.Exec(ctx, query, id, export.StatusError, message, time.Now().UTC(),
		export.StatusPending, export.StatusRunning)
	if err != nil {
		return fmt.Errorf("failed to mark export job errored: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return export.ErrJobNotFound
	}

	return nil
}

func NewExportJobRepository(db *database.DB) export.JobRepository {
	return &exportJobRepository{db: db}
}
