package messaging

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

var _ ports.AppointmentEventPublisher = (*RabbitMQBroker)(nil)

// PublishAppointmentEvent pushes one appointment lifecycle event onto the
// queue. Publishes run through the circuit breaker so a dead broker fails
// fast instead of stalling the relay.
func (rmq *RabbitMQBroker) PublishAppointmentEvent(ctx context.Context, evt ports.AppointmentEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = rmq.cb.Execute(func() (any, error) {
		return nil, rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
	})
	return err
}
