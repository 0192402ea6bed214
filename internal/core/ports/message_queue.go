package ports

import (
	"context"

	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"
)

// EmployeeEventPublisher публикует события об изменении записей.
// Используется usecase после успешной мутации.
type EmployeeEventPublisher interface {
	PublishEmployeeEvent(ctx context.Context, event payloads.EmployeeEvent) error
}

// EmployeeEventConsumer используется воркером для получения событий из очереди
type EmployeeEventConsumer interface {
	// StartConsumingEmployeeEvents начинает прослушивание очереди,
	// handler вызывается для каждого полученного события
	StartConsumingEmployeeEvents(ctx context.Context, handler func(context.Context, payloads.EmployeeEvent) error) error
}
