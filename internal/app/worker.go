package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"
)

// errEventsDisabled возвращается при запуске воркера без настроенного брокера.
var errEventsDisabled = errors.New("worker mode requires RABBITMQ_URL")

// runWorker запускает потребителя RabbitMQ и ждёт отмены контекста.
func (a *App) runWorker(ctx context.Context) error {
	if a.eventConsumer == nil {
		return errEventsDisabled
	}

	a.logger.Info("worker started, waiting for employee events")

	if err := a.eventConsumer.StartConsumingEmployeeEvents(ctx, logEmployeeEvent(a.logger)); err != nil {
		return fmt.Errorf("start RabbitMQ consumer: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("worker stopped")
	return nil
}

// logEmployeeEvent пишет в лог каждое полученное событие.
func logEmployeeEvent(logger *slog.Logger) func(context.Context, payloads.EmployeeEvent) error {
	return func(ctx context.Context, event payloads.EmployeeEvent) error {
		switch event.Type {
		case payloads.EmployeeCreated, payloads.EmployeeUpdated, payloads.EmployeeDeleted:
		default:
			return fmt.Errorf("%w %q", payloads.ErrUnknownEventType, event.Type)
		}

		attrs := []any{
			"event_id", event.ID,
			"type", event.Type,
			"employee_id", event.EmployeeID,
			"occurred_at", event.OccurredAt,
		}
		if event.Employee != nil {
			attrs = append(attrs, "email", event.Employee.Email)
		}
		logger.InfoContext(ctx, "employee event received", attrs...)
		return nil
	}
}
