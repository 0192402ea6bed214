package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/messaging/payloads"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked++; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(uint64, bool) error { return nil }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewPublishing(t *testing.T) {
	emp := &domain.Employee{ID: 7, FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Salary: 5000.5}
	event := payloads.NewEmployeeEvent(payloads.EmployeeCreated, 7, emp)

	msg, err := newPublishing(event)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, event.ID.String(), msg.MessageId)
	assert.Equal(t, payloads.EmployeeCreated, msg.Type)

	var decoded payloads.EmployeeEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, int64(7), decoded.EmployeeID)
	require.NotNil(t, decoded.Employee)
	assert.Equal(t, "Ann", decoded.Employee.FirstName)
}

func delivery(t *testing.T, ack *fakeAcknowledger, body []byte) amqp.Delivery {
	t.Helper()
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestDispatch(t *testing.T) {
	event := payloads.NewEmployeeEvent(payloads.EmployeeDeleted, 3, nil)
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("handled message is acked", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		var got payloads.EmployeeEvent
		dispatch(context.Background(), delivery(t, ack, body), func(_ context.Context, e payloads.EmployeeEvent) error {
			got = e
			return nil
		}, discard)

		assert.Equal(t, 1, ack.acked)
		assert.Equal(t, 0, ack.nacked)
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, payloads.EmployeeDeleted, got.Type)
	})

	t.Run("handler failure requeues", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		dispatch(context.Background(), delivery(t, ack, body), func(context.Context, payloads.EmployeeEvent) error {
			return errors.New("boom")
		}, discard)

		assert.Equal(t, 0, ack.acked)
		assert.Equal(t, 1, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("unknown event type is dropped", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		dispatch(context.Background(), delivery(t, ack, body), func(_ context.Context, e payloads.EmployeeEvent) error {
			return fmt.Errorf("%w %q", payloads.ErrUnknownEventType, e.Type)
		}, discard)

		assert.Equal(t, 0, ack.acked)
		assert.Equal(t, 1, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		called := false
		dispatch(context.Background(), delivery(t, ack, []byte("{not json")), func(context.Context, payloads.EmployeeEvent) error {
			called = true
			return nil
		}, discard)

		assert.False(t, called)
		assert.Equal(t, 1, ack.nacked)
		assert.False(t, ack.requeue)
	})
}
