package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrCompanyScopeDenied    = errors.New("not allowed to act outside your company")
	ErrCompanyScopeMissing   = errors.New("no company scope available for this account")
)
