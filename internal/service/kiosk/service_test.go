package kiosk

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/employee"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/kiosk"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBadgeSecret = "test-badge-secret"

type fakeEmployeeRepo struct {
	byHash map[string]employee.Employee
	calls  int
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByBadgeHash(ctx context.Context, badgeHash string) (employee.Employee, error) {
	f.calls++
	emp, ok := f.byHash[badgeHash]
	if !ok {
		return employee.Employee{}, employee.ErrBadgeNotAssigned
	}
	return emp, nil
}

type fakeAttendanceService struct {
	punchFn func(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error)
}

func (f *fakeAttendanceService) Toggle(ctx context.Context) (attendance.ToggleResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) Punch(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
	return f.punchFn(ctx, employeeID, companyID)
}

func (f *fakeAttendanceService) ToggleBreak(ctx context.Context, req attendance.ToggleBreakRequest) (attendance.ToggleResponse, error) {
	panic("not used")
}

func (f *fakeAttendanceService) ListMine(ctx context.Context, filter attendance.MyEntriesFilter) (attendance.ListEntriesResponse, error) {
	panic("not used")
}

func badgeHash(normalized string) string {
	mac := hmac.New(sha256.New, []byte(testBadgeSecret))
	mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil))
}

func operatorContext(t *testing.T, role, companyID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{"user_id": "op-1", "role": role}
	if companyID != "" {
		claims["company_id"] = companyID
	}
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeEmployeeRepo, att *fakeAttendanceService) kiosk.Service {
	return NewKioskService(testBadgeSecret, repo, att)
}

func TestPunch_ResolvesNormalizedBadge(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{
		badgeHash("BADGE-001"): {ID: "emp-1", CompanyID: "company-1", FullName: "Ana Torres", Active: true},
	}}
	att := &fakeAttendanceService{punchFn: func(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
		assert.Equal(t, "emp-1", employeeID)
		assert.Equal(t, "company-1", companyID)
		return attendance.ToggleResponse{Action: attendance.ActionCheckedIn}, nil
	}}
	svc := newTestService(repo, att)

	// Lowercase with padding normalizes to the stored form.
	resp, err := svc.Punch(operatorContext(t, "manager", "company-1"), kiosk.PunchRequest{BadgeID: "  badge-001 "})
	require.NoError(t, err)
	assert.Equal(t, "checked_in", resp.Action)
	assert.Equal(t, "Ana Torres", resp.EmployeeName)
}

func TestPunch_EmployeeRoleCannotOperate(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestService(repo, &fakeAttendanceService{})

	_, err := svc.Punch(operatorContext(t, "employee", "company-1"), kiosk.PunchRequest{BadgeID: "BADGE-001"})
	assert.ErrorIs(t, err, kiosk.ErrKioskAccessRequired)
	assert.Zero(t, repo.calls)
}

func TestPunch_InvalidBadgeNeverTouchesStore(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestService(repo, &fakeAttendanceService{})
	ctx := operatorContext(t, "manager", "company-1")

	for _, badge := range []string{"", "abc", "BAD GE", "BAD_GE", "TOO-LONG-" + string(make([]byte, 64))} {
		_, err := svc.Punch(ctx, kiosk.PunchRequest{BadgeID: badge})
		require.Error(t, err, "badge %q", badge)
		assert.NotErrorIs(t, err, employee.ErrBadgeNotAssigned)
	}
	assert.Zero(t, repo.calls)
}

func TestPunch_UnknownBadge(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{}}
	svc := newTestService(repo, &fakeAttendanceService{})

	_, err := svc.Punch(operatorContext(t, "manager", "company-1"), kiosk.PunchRequest{BadgeID: "BADGE-404"})
	assert.ErrorIs(t, err, employee.ErrBadgeNotAssigned)
}

func TestPunch_EmployeeOutsideOperatorCompany(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{
		badgeHash("BADGE-001"): {ID: "emp-1", CompanyID: "company-2", FullName: "Ana Torres"},
	}}
	svc := newTestService(repo, &fakeAttendanceService{})

	_, err := svc.Punch(operatorContext(t, "manager", "company-1"), kiosk.PunchRequest{BadgeID: "BADGE-001"})
	assert.ErrorIs(t, err, kiosk.ErrEmployeeOutsideCompany)
}

func TestPunch_AdminMayPunchAnyCompany(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{
		badgeHash("BADGE-001"): {ID: "emp-1", CompanyID: "company-2", FullName: "Ana Torres"},
	}}
	att := &fakeAttendanceService{punchFn: func(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
		return attendance.ToggleResponse{Action: attendance.ActionCheckedOut}, nil
	}}
	svc := newTestService(repo, att)

	resp, err := svc.Punch(operatorContext(t, "admin", ""), kiosk.PunchRequest{BadgeID: "BADGE-001"})
	require.NoError(t, err)
	assert.Equal(t, "checked_out", resp.Action)
}

func TestPunch_LeaveBlockPassesThrough(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{
		badgeHash("BADGE-001"): {ID: "emp-1", CompanyID: "company-1", FullName: "Ana Torres"},
	}}
	att := &fakeAttendanceService{punchFn: func(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
		return attendance.ToggleResponse{}, attendance.ErrOnApprovedLeave
	}}
	svc := newTestService(repo, att)

	_, err := svc.Punch(operatorContext(t, "manager", "company-1"), kiosk.PunchRequest{BadgeID: "BADGE-001"})
	assert.ErrorIs(t, err, attendance.ErrOnApprovedLeave)
}

func TestPunch_OtherAttendanceFailuresAreGeneric(t *testing.T) {
	repo := &fakeEmployeeRepo{byHash: map[string]employee.Employee{
		badgeHash("BADGE-001"): {ID: "emp-1", CompanyID: "company-1", FullName: "Ana Torres"},
	}}
	att := &fakeAttendanceService{punchFn: func(ctx context.Context, employeeID, companyID string) (attendance.ToggleResponse, error) {
		return attendance.ToggleResponse{}, errors.New("store exploded")
	}}
	svc := newTestService(repo, att)

	_, err := svc.Punch(operatorContext(t, "manager", "company-1"), kiosk.PunchRequest{BadgeID: "BADGE-001"})
	assert.ErrorIs(t, err, kiosk.ErrPunchFailed)
	assert.NotContains(t, err.Error(), "store exploded")
}
