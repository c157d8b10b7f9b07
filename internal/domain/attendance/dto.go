package attendance

import (
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/validator"
)

// PunchAction is what a toggle actually did, reported back so kiosks and
// buttons without session state can show feedback.
type PunchAction string

const (
	ActionCheckedIn  PunchAction = "checked_in"
	ActionCheckedOut PunchAction = "checked_out"
	ActionBreakStart PunchAction = "break_started"
	ActionBreakEnd   PunchAction = "break_ended"
)

type ToggleResponse struct {
	Action PunchAction `json:"action"`
	At     string      `json:"at"`
}

type ToggleBreakRequest struct {
	Kind string `json:"kind"`
}

func (r *ToggleBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Kind) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind is required",
		})
	} else if !EntryKind(r.Kind).IsBreak() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of LUNCH_BREAK, OTHER_BREAK, MEDICAL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyEntriesFilter struct {
	StartDate *string
	EndDate   *string
	Kind      *string
	State     *string // "open" | "closed"
	Page      int
	Limit     int
}

type TimeEntryResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	Edited    bool    `json:"edited"`
}

type ListEntriesResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Entries    []TimeEntryResponse `json:"entries"`
}
