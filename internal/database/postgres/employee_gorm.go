package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm открывает GORM поверх уже существующего пула соединений,
// чтобы оба драйвера хранилища делили один лимит соединений.
func OpenGorm(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// GormEmployeeStorage реализует ports.EmployeeStorage с использованием GORM
type GormEmployeeStorage struct {
	db      *gorm.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewGormEmployeeStorage создает новый экземпляр GormEmployeeStorage
func NewGormEmployeeStorage(db *gorm.DB, logger *slog.Logger, m *metrics.Metrics) *GormEmployeeStorage {
	return &GormEmployeeStorage{db: db, logger: logger, metrics: m}
}

// CreateEmployee сохраняет запись и перечитывает её по новому id
func (s *GormEmployeeStorage) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	defer s.metrics.ObserveQuery("create_employee", time.Now())

	row := map[string]any{
		"first_name":   in.FirstName,
		"last_name":    in.LastName,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
		"city":         in.City,
		"department":   in.Department,
		"salary":       float64(in.Salary),
	}

	var id int64
	result := s.db.WithContext(ctx).
		Raw(`INSERT INTO employees (first_name, last_name, email, phone_number, city, department, salary)
			VALUES (@first_name, @last_name, @email, @phone_number, @city, @department, @salary)
			RETURNING id`, row).
		Scan(&id)
	if result.Error != nil {
		s.logger.Error("error inserting employee", "error", result.Error)
		return nil, fmt.Errorf("insert employee: %w", result.Error)
	}

	s.logger.Info("employee inserted successfully", "id", id)
	return s.getByID(ctx, id)
}

// ListEmployees получает все записи по возрастанию id
func (s *GormEmployeeStorage) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	defer s.metrics.ObserveQuery("list_employees", time.Now())

	employees := []domain.Employee{}
	result := s.db.WithContext(ctx).Order("id ASC").Find(&employees)
	if result.Error != nil {
		s.logger.Error("error fetching employees", "error", result.Error)
		return nil, fmt.Errorf("list employees: %w", result.Error)
	}
	return employees, nil
}

// GetEmployeeByID получает запись по id
func (s *GormEmployeeStorage) GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	defer s.metrics.ObserveQuery("get_employee", time.Now())
	return s.getByID(ctx, id)
}

// UpdateEmployee перезаписывает все изменяемые поля, включая пустые
func (s *GormEmployeeStorage) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	defer s.metrics.ObserveQuery("update_employee", time.Now())

	result := s.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name":   in.FirstName,
			"last_name":    in.LastName,
			"email":        in.Email,
			"phone_number": in.PhoneNumber,
			"city":         in.City,
			"department":   in.Department,
			"salary":       float64(in.Salary),
		})
	if result.Error != nil {
		s.logger.Error("error updating employee", "id", id, "error", result.Error)
		return nil, fmt.Errorf("update employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrEmployeeNotFound
	}

	s.logger.Info("employee updated successfully", "id", id)
	return s.getByID(ctx, id)
}

// DeleteEmployee удаляет запись по id
func (s *GormEmployeeStorage) DeleteEmployee(ctx context.Context, id int64) error {
	defer s.metrics.ObserveQuery("delete_employee", time.Now())

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Employee{})
	if result.Error != nil {
		s.logger.Error("error deleting employee", "id", id, "error", result.Error)
		return fmt.Errorf("delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted successfully", "id", id)
	return nil
}

func (s *GormEmployeeStorage) getByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	result := s.db.WithContext(ctx).Where("id = ?", id).Take(&employee)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		s.logger.Error("error fetching employee", "id", id, "error", result.Error)
		return nil, fmt.Errorf("get employee by id: %w", result.Error)
	}
	return &employee, nil
}
