package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/leave"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/clocklabs/timeclock-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

// maxToggleAttempts bounds the serializable retry loop. Attempt 1 plus two
// retries; anything still conflicting after that is reported to the caller.
const maxToggleAttempts = 3

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.TimeEntryRepository
	leave.LeaveRepository
}

func NewAttendanceService(db *database.DB, entryRepository attendance.TimeEntryRepository, leaveRepository leave.LeaveRepository) attendance.Service {
	return &AttendanceServiceImpl{
		db:                  db,
		TimeEntryRepository: entryRepository,
		LeaveRepository:     leaveRepository,
	}
}

func (s *AttendanceServiceImpl) callerIdentity(ctx context.Context) (employeeID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", attendance.ErrNotAuthenticated
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", attendance.ErrNotAuthenticated
	}
	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", attendance.ErrNotAuthenticated
	}

	return employeeID, companyID, nil
}

// Toggle implements attendance.Service.
func (s *AttendanceServiceImpl) Toggle(ctx context.Context) (attendance.ToggleResponse, error) {
	employeeID, companyID, err := s.callerIdentity(ctx)
	if err != nil {
		return attendance.ToggleResponse{}, err
	}

	return s.Punch(ctx, employeeID, companyID)
}

// Punch implements attendance.Service.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
	now := time.Now().UTC()

	// Non-transactional intent read. Only a clock-in consults the leave
	// guard; the transaction below re-reads the open shift and decides
	// authoritatively.
	openShift, err := s.GetOpenEntry(ctx, employeeID, attendance.KindShift)
	if err != nil {
		return attendance.ToggleResponse{}, fmt.Errorf("failed to read open shift: %w", err)
	}
	if openShift == nil {
		kind, onLeave, err := s.ApprovedLeaveKindFor(ctx, employeeID, now)
		if err != nil {
			return attendance.ToggleResponse{}, fmt.Errorf("failed to check approved leave: %w", err)
		}
		if onLeave {
			return attendance.ToggleResponse{}, fmt.Errorf("%w (%s)", attendance.ErrOnApprovedLeave, kind)
		}
	}

	var action attendance.PunchAction

	err = s.retryOnConflict(ctx, func(txCtx context.Context) error {
		shift, err := s.GetOpenEntry(txCtx, employeeID, attendance.KindShift)
		if err != nil {
			return fmt.Errorf("failed to read open shift: %w", err)
		}

		if shift == nil {
			_, err := s.Create(txCtx, attendance.TimeEntry{
				EmployeeID: employeeID,
				CompanyID:  companyID,
				Kind:       attendance.KindShift,
				StartTime:  now,
			})
			if err != nil {
				return fmt.Errorf("failed to open shift: %w", err)
			}
			action = attendance.ActionCheckedIn
			return nil
		}

		if err := s.closeOpenBreaks(txCtx, employeeID, now); err != nil {
			return err
		}
		if err := s.CloseEntry(txCtx, shift.ID, now); err != nil {
			return fmt.Errorf("failed to close shift: %w", err)
		}
		action = attendance.ActionCheckedOut
		return nil
	})

	if err != nil {
		return attendance.ToggleResponse{}, err
	}

	return attendance.ToggleResponse{
		Action: action,
		At:     now.Format(time.RFC3339),
	}, nil
}

// ToggleBreak implements attendance.Service.
func (s *AttendanceServiceImpl) ToggleBreak(ctx context.Context, req attendance.ToggleBreakRequest) (attendance.ToggleResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ToggleResponse{}, err
	}

	employeeID, companyID, err := s.callerIdentity(ctx)
	if err != nil {
		return attendance.ToggleResponse{}, err
	}

	now := time.Now().UTC()
	kind := attendance.EntryKind(req.Kind)

	var action attendance.PunchAction

	err = s.retryOnConflict(ctx, func(txCtx context.Context) error {
		shift, err := s.GetOpenEntry(txCtx, employeeID, attendance.KindShift)
		if err != nil {
			return fmt.Errorf("failed to read open shift: %w", err)
		}
		if shift == nil {
			return attendance.ErrNotOnShift
		}

		openBreak, err := s.GetOpenEntry(txCtx, employeeID, kind)
		if err != nil {
			return fmt.Errorf("failed to read open break: %w", err)
		}

		if openBreak != nil {
			if err := s.CloseEntry(txCtx, openBreak.ID, now); err != nil {
				return fmt.Errorf("failed to close break: %w", err)
			}
			action = attendance.ActionBreakEnd
			return nil
		}

		_, err = s.Create(txCtx, attendance.TimeEntry{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Kind:       kind,
			StartTime:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to open break: %w", err)
		}
		action = attendance.ActionBreakStart
		return nil
	})

	if err != nil {
		return attendance.ToggleResponse{}, err
	}

	return attendance.ToggleResponse{
		Action: action,
		At:     now.Format(time.RFC3339),
	}, nil
}

// ListMine implements attendance.Service.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, filter attendance.MyEntriesFilter) (attendance.ListEntriesResponse, error) {
	employeeID, companyID, err := s.callerIdentity(ctx)
	if err != nil {
		return attendance.ListEntriesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	entries, total, err := s.TimeEntryRepository.ListMine(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListEntriesResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	resp := attendance.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Entries:    make([]attendance.TimeEntryResponse, 0, len(entries)),
	}

	for _, entry := range entries {
		item := attendance.TimeEntryResponse{
			ID:        entry.ID,
			Kind:      string(entry.Kind),
			StartTime: entry.StartTime.Format(time.RFC3339),
			Edited:    entry.Edited,
		}
		if entry.EndTime != nil {
			endTime := entry.EndTime.Format(time.RFC3339)
			item.EndTime = &endTime
		}
		resp.Entries = append(resp.Entries, item)
	}

	return resp, nil
}

// closeOpenBreaks ends every running break before the shift itself closes,
// so no break outlives its shift.
func (s *AttendanceServiceImpl) closeOpenBreaks(ctx context.Context, employeeID string, at time.Time) error {
	open, err := s.ListOpenEntries(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to list open entries: %w", err)
	}

	for _, entry := range open {
		if !entry.Kind.IsBreak() {
			continue
		}
		if err := s.CloseEntry(ctx, entry.ID, at); err != nil {
			return fmt.Errorf("failed to close open break: %w", err)
		}
	}

	return nil
}

// retryOnConflict runs fn as one serializable transaction, retrying the
// whole unit only when the store reports a serialization failure. Every
// other error aborts on first occurrence.
func (s *AttendanceServiceImpl) retryOnConflict(ctx context.Context, fn func(txCtx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		err = postgresql.WithSerializableTransaction(ctx, s.db, fn)
		if err == nil {
			return nil
		}
		if !database.IsSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", attendance.ErrConflictRetriesExhausted, err)
}
