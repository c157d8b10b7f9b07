package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeEntryRepository struct {
	db *database.DB
}

const timeEntryColumns = `id, employee_id, company_id, kind, start_time, end_time,
			   edited, edit_reason, edited_by, created_at, updated_at`

// Create implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry attendance.TimeEntry) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			employee_id, company_id, kind, start_time, end_time
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.CompanyID,
		entry.Kind,
		entry.StartTime,
		entry.EndTime,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return attendance.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetOpenEntry implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenEntry(ctx context.Context, employeeID string, kind attendance.EntryKind) (*attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1
		  AND kind = $2
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var entry attendance.TimeEntry
	err := q.QueryRow(ctx, query, employeeID, kind).Scan(
		&entry.ID, &entry.EmployeeID, &entry.CompanyID, &entry.Kind, &entry.StartTime, &entry.EndTime,
		&entry.Edited, &entry.EditReason, &entry.EditedBy, &entry.CreatedAt, &entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No open entry
		}
		return nil, fmt.Errorf("failed to get open entry: %w", err)
	}

	return &entry, nil
}

// ListOpenEntries implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListOpenEntries(ctx context.Context, employeeID string) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1
		  AND end_time IS NULL
		ORDER BY start_time DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TimeEntry
	for rows.Next() {
		var entry attendance.TimeEntry
		err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.CompanyID, &entry.Kind, &entry.StartTime, &entry.EndTime,
			&entry.Edited, &entry.EditReason, &entry.EditedBy, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CloseEntry implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) CloseEntry(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET end_time = $2, updated_at = $2
		WHERE id = $1 AND end_time IS NULL
		RETURNING id
	`

	var closedID string
	if err := q.QueryRow(ctx, query, id, at).Scan(&closedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrEntryNotFound
		}
		return fmt.Errorf("failed to close time entry: %w", err)
	}

	return nil
}

// ListMine implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListMine(ctx context.Context, employeeID string, filter attendance.MyEntriesFilter, companyID string) ([]attendance.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "employee_id = $1 AND company_id = $2"
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND start_time >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND start_time < ($%d::date + INTERVAL '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Kind != nil && *filter.Kind != "" {
		baseWhere += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.State != nil {
		switch *filter.State {
		case "open":
			baseWhere += " AND end_time IS NULL"
		case "closed":
			baseWhere += " AND end_time IS NOT NULL"
		}
	}

	countQuery := "SELECT COUNT(*) FROM time_entries WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE %s
		ORDER BY start_time DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TimeEntry
	for rows.Next() {
		var entry attendance.TimeEntry
		err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.CompanyID, &entry.Kind, &entry.StartTime, &entry.EndTime,
			&entry.Edited, &entry.EditReason, &entry.EditedBy, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func NewTimeEntryRepository(db *database.DB) attendance.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}
