package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	alertExchange = "seawatch.alerts"
	alertQueue    = "boundary_alerts"
)

// Publisher is the part of an AMQP channel used to publish alerts.
type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// RabbitMQNotifier fans alert events out on a durable exchange.
type RabbitMQNotifier struct {
	ch   Publisher
	conn *amqp.Connection
}

type alertMessage struct {
	ID                   string  `json:"id"`
	VesselID             string  `json:"vessel_id,omitempty"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Speed                float64 `json:"speed"`
	Direction            float64 `json:"direction"`
	StatusCode           int     `json:"status_code"`
	Status               string  `json:"status"`
	InsideSafeZone       bool    `json:"inside_safe_zone"`
	DistanceToBoundaryKm float64 `json:"distance_to_boundary"`
	ModelPrediction      int     `json:"model_prediction"`
	ClassifierSkipped    bool    `json:"classifier_skipped"`
	Place                string  `json:"place,omitempty"`
	Message              string  `json:"message"`
	Timestamp            int64   `json:"timestamp"`
}

// DialRabbitMQ connects to the broker and declares the alert exchange and queue.
func DialRabbitMQ(url string) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(alertExchange, "fanout", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err = ch.QueueDeclare(alertQueue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err = ch.QueueBind(alertQueue, "", alertExchange, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &RabbitMQNotifier{ch: ch, conn: conn}, nil
}

// NewRabbitMQNotifier publishes through an already prepared channel.
func NewRabbitMQNotifier(ch Publisher) *RabbitMQNotifier {
	return &RabbitMQNotifier{ch: ch}
}

// Notify publishes the event as a persistent JSON message.
func (rn *RabbitMQNotifier) Notify(ctx context.Context, event models.AlertEvent) error {
	msg := alertMessage{
		ID:                   event.ID.String(),
		VesselID:             event.VesselID,
		Latitude:             event.Reading.Position.Latitude,
		Longitude:            event.Reading.Position.Longitude,
		Speed:                event.Reading.SpeedKnots,
		Direction:            event.Reading.HeadingDegrees,
		StatusCode:           int(event.Result.StatusCode),
		Status:               event.Result.StatusCode.String(),
		InsideSafeZone:       event.Result.InsideSafeZone,
		DistanceToBoundaryKm: event.Result.DistanceToBoundaryKm,
		ModelPrediction:      event.Result.ModelPrediction,
		ClassifierSkipped:    event.Result.ClassifierSkipped,
		Place:                event.Place,
		Message:              AlertText(event),
		Timestamp:            event.OccurredAt.Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	err = rn.ch.PublishWithContext(ctx, alertExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    time.Unix(msg.Timestamp, 0),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	return nil
}

// Close releases the broker connection when the notifier owns it.
func (rn *RabbitMQNotifier) Close() error {
	if rn.conn == nil {
		return nil
	}

	return rn.conn.Close()
}
