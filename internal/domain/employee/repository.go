package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByBadgeHash resolves a kiosk badge. The stored value is a keyed
	// hash; the raw identifier never reaches the repository.
	GetByBadgeHash(ctx context.Context, badgeHash string) (Employee, error)
}
