package kiosk

import "context"

// Service resolves a scanned badge to an employee and delegates to the
// attendance toggle. The caller is the terminal operator account, not the
// employee being punched.
type Service interface {
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)
}
