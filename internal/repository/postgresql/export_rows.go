package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
)

type exportRowsRepository struct {
	db *database.DB
}

// DetailRows implements export.RowsRepository.
func (r *exportRowsRepository) DetailRows(ctx context.Context, f export.DetailQuery) ([]export.DetailRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "t.company_id = $1"
	args := []interface{}{f.CompanyID}
	argIdx := 2

	if f.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, f.EmployeeID)
		argIdx++
	}
	if f.From != nil {
		baseWhere += fmt.Sprintf(" AND t.start_time >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		baseWhere += fmt.Sprintf(" AND t.start_time < $%d", argIdx)
		args = append(args, f.To.AddDate(0, 0, 1))
		argIdx++
	}
	switch f.State {
	case "open":
		baseWhere += " AND t.end_time IS NULL"
	case "closed":
		baseWhere += " AND t.end_time IS NOT NULL"
	}
	if f.Kind != "" {
		baseWhere += fmt.Sprintf(" AND t.kind = $%d", argIdx)
		args = append(args, f.Kind)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT e.full_name, t.employee_id, t.kind, t.start_time, t.end_time
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE %s
		ORDER BY t.start_time ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query export detail rows: %w", err)
	}
	defer rows.Close()

	var result []export.DetailRow
	for rows.Next() {
		var row export.DetailRow
		var name *string
		if err := rows.Scan(&name, &row.EmployeeID, &row.Kind, &row.StartTime, &row.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan export detail row: %w", err)
		}
		if name != nil {
			row.EmployeeName = *name
		}
		result = append(result, row)
	}

	return result, nil
}

// SummaryRows implements export.RowsRepository. Only closed entries count
// towards total time; open ones have no duration yet.
func (r *exportRowsRepository) SummaryRows(ctx context.Context, from, to *time.Time) ([]export.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if from != nil {
		baseWhere += fmt.Sprintf(" AND t.start_time >= $%d", argIdx)
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		baseWhere += fmt.Sprintf(" AND t.start_time < $%d", argIdx)
		args = append(args, to.AddDate(0, 0, 1))
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.name,
			   COUNT(t.id),
			   COALESCE(SUM(
				   CASE WHEN t.end_time IS NOT NULL
						THEN EXTRACT(EPOCH FROM (t.end_time - t.start_time)) / 60
						ELSE 0
				   END
			   ), 0)::bigint
		FROM companies c
		LEFT JOIN time_entries t ON t.company_id = c.id AND %s
		GROUP BY c.id, c.name
		ORDER BY c.name ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query export summary rows: %w", err)
	}
	defer rows.Close()

	var result []export.SummaryRow
	for rows.Next() {
		var row export.SummaryRow
		if err := rows.Scan(&row.CompanyID, &row.CompanyName, &row.EntryCount, &row.TotalMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan export summary row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

func NewExportRowsRepository(db *database.DB) export.RowsRepository {
	return &exportRowsRepository{db: db}
}
