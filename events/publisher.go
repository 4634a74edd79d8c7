package events

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// Actions understood by downstream search-index consumers.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PropertyMessage notifies consumers that a property (or one of its
// bookings, which changes its availability) has changed.
type PropertyMessage struct {
	Action     string `json:"action"`
	PropertyID string `json:"property_id"`
}

// Publisher pushes property change messages onto a durable queue.
// A nil *Publisher is valid and drops all messages, so callers don't
// have to guard every publish site behind config checks.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

// NewPublisher connects to RabbitMQ and declares the queue.
func NewPublisher(rabbitURL, queueName string) (*Publisher, error) {
	if queueName == "" {
		queueName = "properties_queue"
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	log.Printf("event publisher connected, queue=%s", queueName)
	return &Publisher{connection: conn, channel: ch, queueName: queueName}, nil
}

// PublishPropertyChange sends a message for the given property.
// Best-effort: failures are logged and swallowed so a broker outage
// never fails an API request.
func (p *Publisher) PublishPropertyChange(action string, propertyID uint) {
	if p == nil {
		return
	}

	body, err := json.Marshal(PropertyMessage{
		Action:     action,
		PropertyID: fmt.Sprintf("%d", propertyID),
	})
	if err != nil {
		log.Printf("event publish: marshal failed: %v", err)
		return
	}

	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("event publish failed for property %d: %v", propertyID, err)
	}
}

// Close tears down the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		p.connection.Close()
	}
}
