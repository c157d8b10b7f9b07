package kiosk

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/employee"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/kiosk"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type KioskServiceImpl struct {
	badgeSecret []byte
	employee.EmployeeRepository
	attendanceService attendance.Service
}

func NewKioskService(badgeSecret string, employeeRepository employee.EmployeeRepository, attendanceService attendance.Service) kiosk.Service {
	return &KioskServiceImpl{
		badgeSecret:        []byte(badgeSecret),
		EmployeeRepository: employeeRepository,
		attendanceService:  attendanceService,
	}
}

// hashBadge derives the stored identity from a normalized badge id. The raw
// id exists only in this request's memory; logs and the store only ever see
// the keyed hash.
func (s *KioskServiceImpl) hashBadge(normalized string) string {
	mac := hmac.New(sha256.New, s.badgeSecret)
	mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil))
}

// Punch implements kiosk.Service.
func (s *KioskServiceImpl) Punch(ctx context.Context, req kiosk.PunchRequest) (kiosk.PunchResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return kiosk.PunchResponse{}, attendance.ErrNotAuthenticated
	}

	roleStr, _ := claims["role"].(string)
	operator := user.User{Role: user.Role(roleStr)}
	if !operator.CanOperateKiosk() {
		return kiosk.PunchResponse{}, kiosk.ErrKioskAccessRequired
	}

	if err := req.Validate(); err != nil {
		return kiosk.PunchResponse{}, err
	}

	badgeHash := s.hashBadge(req.Normalized())
	emp, err := s.GetByBadgeHash(ctx, badgeHash)
	if err != nil {
		if errors.Is(err, employee.ErrBadgeNotAssigned) {
			return kiosk.PunchResponse{}, err
		}
		return kiosk.PunchResponse{}, fmt.Errorf("failed to resolve badge: %w", err)
	}

	// Admin operators may punch for any company; everyone else only for
	// employees of their own.
	if operator.Role != user.RoleAdmin {
		operatorCompanyID, _ := claims["company_id"].(string)
		if operatorCompanyID == "" || operatorCompanyID != emp.CompanyID {
			return kiosk.PunchResponse{}, kiosk.ErrEmployeeOutsideCompany
		}
	}

	toggle, err := s.attendanceService.Punch(ctx, emp.ID, emp.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrOnApprovedLeave) {
			return kiosk.PunchResponse{}, err
		}
		slog.Error("kiosk punch failed",
			slog.String("employee_id", emp.ID),
			slog.Any("error", err),
		)
		return kiosk.PunchResponse{}, kiosk.ErrPunchFailed
	}

	return kiosk.PunchResponse{
		Action:       string(toggle.Action),
		EmployeeName: emp.FullName,
	}, nil
}
