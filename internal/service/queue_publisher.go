// Package queue_publisher publishes reservation lifecycle events to
// RabbitMQ.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/restaurant-table-reservation/internal/queue"
)

// AMQPPublisher implements the booking.Publisher interface.  A fresh
// connection is dialed per publish; event volume is low (one message per
// booking or cancellation) and this keeps the publisher free of
// connection state to babysit.
type AMQPPublisher struct {
    url string
}

// New returns a publisher targeting the broker configured via
// RABBITMQ_URL / AMQP_URL, defaulting to a local broker.
func New() *AMQPPublisher {
    return &AMQPPublisher{url: q.BrokerURL()}
}

// PublishReservationConfirmed publishes a ReservationConfirmedEvent to
// the reservation.confirmed queue.
func (p *AMQPPublisher) PublishReservationConfirmed(ctx context.Context, ev q.ReservationConfirmedEvent) error {
    return p.publish(ctx, q.ReservationConfirmedQueue, ev)
}

// PublishReservationCancelled publishes a ReservationCancelledEvent to
// the reservation.cancelled queue.
func (p *AMQPPublisher) PublishReservationCancelled(ctx context.Context, ev q.ReservationCancelledEvent) error {
    return p.publish(ctx, q.ReservationCancelledQueue, ev)
}

// publish marshals the event and sends it to the named queue.  The queue
// is declared durable and messages are marked persistent so they survive
// broker restarts.  The function never panics; any error is logged and
// returned so the caller can choose to ignore it.
func (p *AMQPPublisher) publish(ctx context.Context, queueName string, event any) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent).
    if _, err := ch.QueueDeclare(
        queueName, // name
        true,      // durable
        false,     // autoDelete
        false,     // exclusive
        false,     // noWait
        nil,       // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",        // default exchange
        queueName, // routing key = queue name
        false,     // mandatory
        false,     // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
