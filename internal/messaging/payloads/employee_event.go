package payloads

import (
	"errors"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/google/uuid"
)

// Типы событий об изменении записей сотрудников.
const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

// ErrUnknownEventType — событие с типом, который потребитель не умеет обрабатывать.
// Повторная доставка такого сообщения ничего не изменит.
var ErrUnknownEventType = errors.New("unknown event type")

// EmployeeEvent — сообщение, которое уходит в RabbitMQ после успешной мутации.
// Клиенты, держащие локальную копию списка, по нему понимают, что пора перечитать список.
type EmployeeEvent struct {
	ID         uuid.UUID        `json:"id"`
	Type       string           `json:"type"`
	EmployeeID int64            `json:"employee_id"`
	Employee   *domain.Employee `json:"employee,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEmployeeEvent создаёт событие с новым id и текущим временем.
func NewEmployeeEvent(eventType string, employeeID int64, employee *domain.Employee) EmployeeEvent {
	return EmployeeEvent{
		ID:         uuid.New(),
		Type:       eventType,
		EmployeeID: employeeID,
		Employee:   employee,
		OccurredAt: time.Now().UTC(),
	}
}
