package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/employee"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `id, company_id, full_name, email, badge_hash, active, created_at, updated_at`

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Email, &emp.BadgeHash,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByBadgeHash implements employee.EmployeeRepository.
func (r *employeeRepository) GetByBadgeHash(ctx context.Context, badgeHash string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE badge_hash = $1
		  AND active = TRUE
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, badgeHash).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Email, &emp.BadgeHash,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrBadgeNotAssigned
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by badge: %w", err)
	}

	return emp, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
