package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBadgeNotAssigned = errors.New("card is not assigned to any employee")
)
