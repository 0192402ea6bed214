package ports

import (
	"context"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
)

// EmployeeStorage определяет методы для взаимодействия с таблицей employees.
// Каждый метод выполняет один параметризованный запрос (Create и Update
// дополнительно перечитывают строку по id).
type EmployeeStorage interface {
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}
