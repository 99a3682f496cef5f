package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartConsumer connects to the broker, declares the rental.events queue and
// appends one line per event to logs/rental.log. It runs a reconnect loop
// with exponential backoff and never returns under normal operation; broken
// messages are rejected without requeue so a poison message cannot wedge the
// consumer.
func StartConsumer() {
	p := NewPublisher() // reuse URL resolution

	backoff := time.Second
	for {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			log.Printf("rental-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("rental-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(eventsQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(eventsQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("rental-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line, err := formatEvent(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "rental.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatEvent(env Envelope) (string, error) {
	switch env.Type {
	case "rental.created":
		ev := env.RentalCreated
		if ev == nil {
			return "", errors.New("rental.created envelope without payload")
		}
		return fmt.Sprintf("[%s] Rentals created | customer_id=%d | store_id=%d | completed=%d | failed=%d | rental_ids=%v\n",
			ev.CreatedAt, ev.CustomerID, ev.StoreID, ev.Completed, ev.Failed, ev.RentalIDs), nil
	case "returns.processed":
		ev := env.ReturnsProcessed
		if ev == nil {
			return "", errors.New("returns.processed envelope without payload")
		}
		return fmt.Sprintf("[%s] Returns processed | updated_count=%d | rental_ids=%v\n",
			ev.ProcessedAt, ev.UpdatedCount, ev.RentalIDs), nil
	default:
		return "", fmt.Errorf("unknown event type %q", env.Type)
	}
}
