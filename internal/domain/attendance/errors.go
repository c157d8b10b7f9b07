package attendance

import "errors"

// Attendance domain errors
var (
	ErrNotAuthenticated         = errors.New("no authenticated identity on request")
	ErrNotOnShift               = errors.New("you are not on shift")
	ErrBreakKindNotAllowed      = errors.New("unknown break kind")
	ErrOnApprovedLeave          = errors.New("you have an approved leave for today")
	ErrConflictRetriesExhausted = errors.New("could not register the action after concurrent retries")
	ErrEntryNotFound            = errors.New("time entry not found")
)
