// Package mocks содержит testify-моки портов и usecase для тестов.
package mocks

import (
	"context"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"
	"github.com/stretchr/testify/mock"
)

// EmployeeStorage is a mock of ports.EmployeeStorage.
type EmployeeStorage struct {
	mock.Mock
}

func (m *EmployeeStorage) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, in)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeStorage) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Employee)
	return list, args.Error(1)
}

func (m *EmployeeStorage) GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeStorage) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, id, in)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeStorage) DeleteEmployee(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// EmployeeUseCase is a mock of usecase.EmployeeUseCase.
type EmployeeUseCase struct {
	mock.Mock
}

func (m *EmployeeUseCase) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, in)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeUseCase) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Employee)
	return list, args.Error(1)
}

func (m *EmployeeUseCase) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeUseCase) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, id, in)
	return employeeArg(args, 0), args.Error(1)
}

func (m *EmployeeUseCase) DeleteEmployee(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// EmployeeEventPublisher is a mock of ports.EmployeeEventPublisher.
type EmployeeEventPublisher struct {
	mock.Mock
}

func (m *EmployeeEventPublisher) PublishEmployeeEvent(ctx context.Context, event payloads.EmployeeEvent) error {
	return m.Called(ctx, event).Error(0)
}

func employeeArg(args mock.Arguments, idx int) *domain.Employee {
	e, _ := args.Get(idx).(*domain.Employee)
	return e
}
