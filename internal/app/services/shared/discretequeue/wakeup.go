package discretequeue

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// WakeupSignal is an empty marker; the payload of a wakeup does not matter,
// only that one arrived.
type WakeupSignal struct{}

func adaptDeliveries(deliveries <-chan amqp.Delivery) <-chan WakeupSignal {
	signals := make(chan WakeupSignal)
	go func() {
		defer close(signals)
		for range deliveries {
			signals <- WakeupSignal{}
		}
	}()
	return signals
}
