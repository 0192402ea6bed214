package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/config"
	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Идемпотентно: очередь создаётся, если её нет.
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("connected to RabbitMQ", "queue", q.Name, "messages", q.Messages)
	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Warn("error closing RabbitMQ connection", "error", err)
		}
	}
	c.logger.Info("RabbitMQ connection closed")
}

// newPublishing упаковывает событие в сообщение AMQP.
func newPublishing(event payloads.EmployeeEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

// PublishEmployeeEvent публикует событие об изменении записи сотрудника.
// Реализует ports.EmployeeEventPublisher.
func (c *Client) PublishEmployeeEvent(ctx context.Context, event payloads.EmployeeEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	c.logger.Debug("event published", "queue", c.queue.Name, "event_id", msg.MessageId, "type", event.Type)
	return nil
}

// StartConsumingEmployeeEvents начинает потребление событий из очереди.
// Реализует ports.EmployeeEventConsumer.
func (c *Client) StartConsumingEmployeeEvents(ctx context.Context, handler func(context.Context, payloads.EmployeeEvent) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}
				dispatch(ctx, msg, handler, c.logger)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}

// dispatch декодирует одно сообщение и передаёт его обработчику.
// Нечитаемое сообщение отбрасывается, ошибка обработчика возвращает его в очередь.
func dispatch(ctx context.Context, msg amqp.Delivery, handler func(context.Context, payloads.EmployeeEvent) error, logger *slog.Logger) {
	var event payloads.EmployeeEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			logger.Error("error NACKing message after unmarshal failure", "error", err)
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		requeue := !errors.Is(err, payloads.ErrUnknownEventType)
		logger.Error("error processing message", "error", err, "event_id", event.ID, "requeue", requeue)
		if err := msg.Nack(false, requeue); err != nil {
			logger.Error("error NACKing message after processing failure", "error", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("error ACKing message", "error", err)
	}
}
