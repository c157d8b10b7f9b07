package leave

import (
	"context"
	"time"
)

// LeaveRepository is the read-only guard consulted before a clock-in. It does
// not join the attendance transaction; the small race window between an
// approval changing and the clock-in landing is accepted.
type LeaveRepository interface {
	// ApprovedLeaveKindFor returns the kind of an approved leave covering
	// date, matching single-day requests (no end date) as well as ranges
	// with inclusive bounds. ok is false when nothing blocks the day.
	ApprovedLeaveKindFor(ctx context.Context, employeeID string, date time.Time) (kind string, ok bool, err error)
}
