package discretequeue

import (
	"context"
	"fmt"
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WakeupMessage tells the worker a new item landed in the durable queue.
// The authoritative state lives in the database; losing a wakeup only delays
// processing until the next poll tick.
type WakeupMessage struct {
	DocUniqueID string `json:"doc_unique_id"`
}

// RabbitMQNotifier publishes wakeup messages with persistence and publisher
// confirms, and exposes a consume channel for the worker.
type RabbitMQNotifier struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewRabbitMQNotifier(conn *amqp.Connection, log *zap.Logger, prefetch int) (*RabbitMQNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.RabbitMQDiscreteWakeupQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.RabbitMQDiscreteWakeupDLQ,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	notifier := &RabbitMQNotifier{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}
	return notifier, nil
}

func (n *RabbitMQNotifier) NotifyEnqueued(ctx context.Context, docUniqueID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	n.log.Info("RabbitMQNotifier.NotifyEnqueued called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, docUniqueID),
	)

	body, err := json.Marshal(WakeupMessage{DocUniqueID: docUniqueID})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := n.ch.PublishWithContext(ctx, "", constvars.RabbitMQDiscreteWakeupQueue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, constvars.RabbitMQDiscreteWakeupQueue)
	}

	select {
	case confirmed := <-n.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), constvars.RabbitMQDiscreteWakeupQueue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), constvars.RabbitMQDiscreteWakeupQueue)
	}
	return nil
}

// Consume returns a delivery channel of wakeup messages with auto-ack.
// Wakeups carry no state, so redelivery guarantees are not needed.
func (n *RabbitMQNotifier) Consume() (<-chan amqp.Delivery, error) {
	return n.ch.Consume(
		constvars.RabbitMQDiscreteWakeupQueue,
		"", // consumer tag
		true,
		false,
		false,
		false,
		nil,
	)
}
