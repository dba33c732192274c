package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/queue"
)

// RabbitPublisher publishes seat events to the durable queue.SeatEventsQueue.
// Each Send dials, declares the queue and publishes one persistent message;
// seat changes are rare enough that a long-lived channel is not needed.
type RabbitPublisher struct {
	url string
	now func() time.Time
}

// NewRabbitPublisher returns nil when url is empty.
func NewRabbitPublisher(url string) *RabbitPublisher {
	if url == "" {
		return nil
	}
	return &RabbitPublisher{url: url, now: time.Now}
}

func (r *RabbitPublisher) Name() string { return "rabbitmq" }

func (r *RabbitPublisher) Send(ctx context.Context, event string, payload model.SeatsChanged) error {
	pub, err := buildPublishing(event, payload, r.now().UTC())
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.SeatEventsQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		queue.SeatEventsQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func buildPublishing(event string, payload model.SeatsChanged, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(queue.SeatEvent{
		Event:       event,
		ScreeningID: payload.ScreeningID,
		SeatIDs:     payload.SeatIDs,
		OccurredAt:  at.Format(time.RFC3339),
	})
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    at,
		Type:         event,
		Body:         body,
	}, nil
}
