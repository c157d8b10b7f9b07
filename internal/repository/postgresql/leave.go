package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/leave"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

// ApprovedLeaveKindFor implements leave.LeaveRepository. A request with no
// end date covers exactly its start day; ranged requests use inclusive
// bounds on both ends.
func (r *leaveRepository) ApprovedLeaveKindFor(ctx context.Context, employeeID string, date time.Time) (string, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kind
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $2
		  AND (end_date IS NULL AND start_date = $2 OR end_date >= $2)
		ORDER BY start_date DESC
		LIMIT 1
	`

	day := date.Format("2006-01-02")

	var kind string
	err := q.QueryRow(ctx, query, employeeID, day).Scan(&kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query approved leave: %w", err)
	}

	return kind, true, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
