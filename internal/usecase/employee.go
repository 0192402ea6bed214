package usecase

import (
	"context"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
)

// EmployeeUseCase определяет операции над записями сотрудников, доступные HTTP-слою
type EmployeeUseCase interface {
	// CreateEmployee вставляет новую запись и возвращает её в том виде, как она сохранена в бд
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)

	// ListEmployees возвращает все записи по возрастанию id
	ListEmployees(ctx context.Context) ([]domain.Employee, error)

	// GetEmployee возвращает запись по id или domain.ErrEmployeeNotFound
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)

	// UpdateEmployee полностью заменяет изменяемые поля записи.
	// Поля, отсутствующие во входе, сбрасываются в NULL (salary — в 0)
	UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error)

	// DeleteEmployee удаляет запись или возвращает domain.ErrEmployeeNotFound
	DeleteEmployee(ctx context.Context, id int64) error
}
