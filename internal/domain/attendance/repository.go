package attendance

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for time entries. All methods run
// against the transaction carried in ctx when one is present, so the toggle
// state machine can keep its decide-and-write unit atomic.
type TimeEntryRepository interface {
	// Create inserts a new open entry
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetOpenEntry returns the most recent open entry of the given kind,
	// ordered by start time descending. Nil when none is open.
	GetOpenEntry(ctx context.Context, employeeID string, kind EntryKind) (*TimeEntry, error)

	// ListOpenEntries returns every open entry for the employee
	ListOpenEntries(ctx context.Context, employeeID string) ([]TimeEntry, error)

	// CloseEntry sets the end time of an open entry
	CloseEntry(ctx context.Context, id string, at time.Time) error

	// ListMine retrieves entries for one employee with filters and pagination
	ListMine(ctx context.Context, employeeID string, filter MyEntriesFilter, companyID string) ([]TimeEntry, int64, error)
}
