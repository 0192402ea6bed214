package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"github.com/jmoiron/sqlx"
)

const (
	employeeColumns = `id, first_name, last_name, email, phone_number, city, department, salary, created_at`

	insertEmployeeQuery = `
	INSERT INTO employees (first_name, last_name, email, phone_number, city, department, salary)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`

	selectEmployeeByIDQuery = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	listEmployeesQuery = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id ASC`

	updateEmployeeQuery = `
	UPDATE employees
	SET first_name = $1, last_name = $2, email = $3, phone_number = $4, city = $5, department = $6, salary = $7
	WHERE id = $8`

	deleteEmployeeQuery = `DELETE FROM employees WHERE id = $1`
)

// EmployeeStorage реализует ports.EmployeeStorage поверх sqlx.
type EmployeeStorage struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewEmployeeStorage(db *sqlx.DB, logger *slog.Logger, m *metrics.Metrics) *EmployeeStorage {
	return &EmployeeStorage{db: db, logger: logger, metrics: m}
}

// CreateEmployee вставляет строку и перечитывает её по новому id.
func (s *EmployeeStorage) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	start := time.Now()
	defer s.metrics.ObserveQuery("create_employee", start)

	var id int64
	if err := s.db.QueryRowxContext(ctx, insertEmployeeQuery, in.Columns()...).Scan(&id); err != nil {
		s.logger.Error("error inserting employee", "error", err)
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	employee, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee inserted successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return employee, nil
}

// ListEmployees возвращает все строки по возрастанию id.
func (s *EmployeeStorage) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	start := time.Now()
	defer s.metrics.ObserveQuery("list_employees", start)

	employees := []domain.Employee{}
	if err := s.db.SelectContext(ctx, &employees, listEmployeesQuery); err != nil {
		s.logger.Error("error fetching employees", "error", err)
		return nil, fmt.Errorf("list employees: %w", err)
	}

	s.logger.Debug("listed employees",
		"count", len(employees),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return employees, nil
}

// GetEmployeeByID возвращает строку по id или domain.ErrEmployeeNotFound.
func (s *EmployeeStorage) GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	defer s.metrics.ObserveQuery("get_employee", time.Now())
	return s.getByID(ctx, id)
}

// UpdateEmployee полностью перезаписывает изменяемые поля и перечитывает строку.
func (s *EmployeeStorage) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	start := time.Now()
	defer s.metrics.ObserveQuery("update_employee", start)

	args := append(in.Columns(), id)
	res, err := s.db.ExecContext(ctx, updateEmployeeQuery, args...)
	if err != nil {
		s.logger.Error("error updating employee", "id", id, "error", err)
		return nil, fmt.Errorf("update employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update employee: rows affected: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("employee not found for update", "id", id)
		return nil, domain.ErrEmployeeNotFound
	}

	employee, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return employee, nil
}

// DeleteEmployee удаляет строку или возвращает domain.ErrEmployeeNotFound.
func (s *EmployeeStorage) DeleteEmployee(ctx context.Context, id int64) error {
	start := time.Now()
	defer s.metrics.ObserveQuery("delete_employee", start)

	res, err := s.db.ExecContext(ctx, deleteEmployeeQuery, id)
	if err != nil {
		s.logger.Error("error deleting employee", "id", id, "error", err)
		return fmt.Errorf("delete employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee: rows affected: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("employee not found for delete", "id", id)
		return domain.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *EmployeeStorage) getByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	err := s.db.GetContext(ctx, &employee, selectEmployeeByIDQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("employee not found by id", "id", id)
			return nil, domain.ErrEmployeeNotFound
		}
		s.logger.Error("error fetching employee", "id", id, "error", err)
		return nil, fmt.Errorf("get employee by id: %w", err)
	}
	return &employee, nil
}
