// Package analytics публикует события аналитики в RabbitMQ.
// Отправка событий вспомогательная: её отказ никогда не должен
// прерывать операцию, в рамках которой событие возникло.
package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Имена событий изменения согласия на рассылку.
const (
	EventEmailOptedIn  = "lms.user.org_email.opted_in"
	EventEmailOptedOut = "lms.user.org_email.opted_out"
)

// Event описывает событие аналитики.
type Event struct {
	Username string `json:"username"` // Имя пользователя
	Name     string `json:"name"`     // Имя события
	Category string `json:"category"` // Категория события
	Label    string `json:"label"`    // Метка, для событий рассылки — организация
}

// Publisher публикует события в обменник RabbitMQ.
type Publisher struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "analytics.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// NewPublisher открывает канал и объявляет обменник для событий.
func NewPublisher(conn *amqp.Connection, exchange, routingKey string) (*Publisher, error) {
	const op = "analytics.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

// Track публикует событие аналитики.
func (p *Publisher) Track(event Event) error {
	const op = "analytics.Track"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
