package response

import (
	"errors"
	"net/http"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/auth"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/employee"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/kiosk"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/user"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotAuthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrConflictRetriesExhausted):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotOnShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrBreakKindNotAllowed):
		BadRequest(w, err.Error(), nil)

	// Kiosk domain errors
	case errors.Is(err, kiosk.ErrKioskAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, kiosk.ErrEmployeeOutsideCompany):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrBadgeNotAssigned):
		NotFound(w, err.Error())
	case errors.Is(err, kiosk.ErrPunchFailed):
		InternalServerError(w, err.Error())

	// Export domain errors
	case errors.Is(err, export.ErrJobNotFound):
		NotFound(w, "Export job not found")
	case errors.Is(err, export.ErrExportAccessRequired),
		errors.Is(err, export.ErrSummaryAdminOnly):
		Forbidden(w, err.Error())

	// Tenancy errors
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrCompanyScopeDenied),
		errors.Is(err, user.ErrCompanyScopeMissing):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
