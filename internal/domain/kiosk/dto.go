package kiosk

import (
	"strings"

	"github.com/clocklabs/timeclock-backend-go/internal/pkg/validator"
)

const (
	minBadgeLength = 4
	maxBadgeLength = 64
)

type PunchRequest struct {
	BadgeID string `json:"badge_id"`
}

// Normalized returns the canonical badge form used for hashing.
func (r *PunchRequest) Normalized() string {
	return strings.ToUpper(strings.TrimSpace(r.BadgeID))
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	badge := r.Normalized()
	if len(badge) < minBadgeLength || len(badge) > maxBadgeLength {
		errs = append(errs, validator.ValidationError{
			Field:   "badge_id",
			Message: "badge identifier must be between 4 and 64 characters",
		})
	} else if !validator.IsValidBadgeID(badge) {
		errs = append(errs, validator.ValidationError{
			Field:   "badge_id",
			Message: "badge identifier contains invalid characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PunchResponse carries the action and display name back to the terminal;
// the kiosk has no session to infer either from.
type PunchResponse struct {
	Action       string `json:"action"`
	EmployeeName string `json:"employee_name"`
}
