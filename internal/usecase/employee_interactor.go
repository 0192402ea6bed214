package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeApp/internal/core/ports"
	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
)

// employeeUseCase implements EmployeeUseCase
type employeeUseCase struct {
	storage   ports.EmployeeStorage
	publisher ports.EmployeeEventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewEmployeeUseCase создает новый экземпляр EmployeeUseCase.
// publisher может быть nil — тогда события не публикуются.
func NewEmployeeUseCase(
	storage ports.EmployeeStorage,
	publisher ports.EmployeeEventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) EmployeeUseCase {
	return &employeeUseCase{
		storage:   storage,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

func (uc *employeeUseCase) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := uc.storage.CreateEmployee(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("usecase: create employee: %w", err)
	}

	uc.publish(ctx, payloads.NewEmployeeEvent(payloads.EmployeeCreated, employee.ID, employee))
	return employee, nil
}

func (uc *employeeUseCase) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := uc.storage.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list employees: %w", err)
	}
	return employees, nil
}

func (uc *employeeUseCase) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := uc.storage.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get employee %d: %w", id, err)
	}
	return employee, nil
}

func (uc *employeeUseCase) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := uc.storage.UpdateEmployee(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("usecase: update employee %d: %w", id, err)
	}

	uc.publish(ctx, payloads.NewEmployeeEvent(payloads.EmployeeUpdated, employee.ID, employee))
	return employee, nil
}

func (uc *employeeUseCase) DeleteEmployee(ctx context.Context, id int64) error {
	if err := uc.storage.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("usecase: delete employee %d: %w", id, err)
	}

	uc.publish(ctx, payloads.NewEmployeeEvent(payloads.EmployeeDeleted, id, nil))
	return nil
}

// publish отправляет событие без влияния на результат запроса:
// запись уже изменена, ошибка брокера только логируется.
func (uc *employeeUseCase) publish(ctx context.Context, event payloads.EmployeeEvent) {
	if uc.publisher == nil {
		return
	}

	if err := uc.publisher.PublishEmployeeEvent(ctx, event); err != nil {
		uc.metrics.EventsPublished.WithLabelValues(event.Type, "failure").Inc()
		uc.logger.Warn("failed to publish employee event",
			"type", event.Type,
			"employee_id", event.EmployeeID,
			"error", err,
		)
		return
	}
	uc.metrics.EventsPublished.WithLabelValues(event.Type, "success").Inc()
}
