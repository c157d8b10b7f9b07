package export

import (
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/pkg/validator"
)

type CreateExportRequest struct {
	Kind    string     `json:"kind"`
	Filters JobFilters `json:"filters"`
}

func (r *CreateExportRequest) Validate() error {
	var errs validator.ValidationErrors

	switch JobKind(r.Kind) {
	case KindAttendanceDetail, KindAttendanceSummaryByOrg:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be ATTENDANCE_DETAIL or ATTENDANCE_SUMMARY_BY_ORG",
		})
	}

	if r.Filters.From != "" {
		if _, ok := validator.IsValidDate(r.Filters.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "filters.from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Filters.To != "" {
		if _, ok := validator.IsValidDate(r.Filters.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "filters.to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	switch r.Filters.State {
	case "", "open", "closed":
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "filters.state",
			Message: "state must be open or closed",
		})
	}

	if r.Filters.Kind != "" && !validator.IsInSlice(r.Filters.Kind, []string{"SHIFT", "LUNCH_BREAK", "OTHER_BREAK", "MEDICAL"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "filters.kind",
			Message: "kind filter must be a known entry kind",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateExportResponse struct {
	JobID string `json:"job_id"`
}

// StatusResponse is what the poller sees. Clients are expected to poll at a
// bounded interval (4s reference) and stop on READY or ERROR.
type StatusResponse struct {
	JobID  string  `json:"job_id"`
	Status string  `json:"status"`
	URL    *string `json:"url,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// DetailQuery is the normalized filter set handed to the rows query: bounds
// swapped when inverted, state mapped to open/closed end times.
type DetailQuery struct {
	CompanyID  string
	EmployeeID string
	From       *time.Time
	To         *time.Time
	State      string
	Kind       string
}
