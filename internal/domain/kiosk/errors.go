package kiosk

import "errors"

var (
	ErrKioskAccessRequired     = errors.New("this account cannot operate a kiosk terminal")
	ErrEmployeeOutsideCompany  = errors.New("card belongs to another company")
	ErrPunchFailed             = errors.New("could not register the action, try again")
)
