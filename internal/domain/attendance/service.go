package attendance

import "context"

// Service is the attendance state machine. Per employee the derived state is
// OFF_SHIFT, ON_SHIFT or ON_SHIFT_ON_BREAK; every transition runs as one
// serializable decide-and-write transaction retried only on the store's
// conflict signal.
type Service interface {
	// Toggle flips the caller's shift: clock in when off shift, clock out
	// (closing any open break first) when on shift.
	Toggle(ctx context.Context) (ToggleResponse, error)

	// Punch is the kiosk flavor of Toggle for an employee resolved from a
	// badge rather than from session claims.
	Punch(ctx context.Context, employeeID, companyID string) (ToggleResponse, error)

	// ToggleBreak starts a break of the given kind, or ends it if one of
	// that kind is already open. Requires an open shift.
	ToggleBreak(ctx context.Context, req ToggleBreakRequest) (ToggleResponse, error)

	// ListMine retrieves the caller's entries
	ListMine(ctx context.Context, filter MyEntriesFilter) (ListEntriesResponse, error)
}
