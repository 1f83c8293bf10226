// Package mqtt feeds vessel positions from an MQTT broker into the monitor.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/models"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic matches one position topic per vessel.
const DefaultTopic = "seawatch/vessels/+/position"

var errMissingVessel = errors.New("vessel_id: required")

type submitter interface {
	Submit(ctx context.Context, position models.VesselPosition) error
}

type positionMessage struct {
	VesselID  string   `json:"vessel_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Speed     float64  `json:"speed"`
	Direction float64  `json:"direction"`
	Timestamp int64    `json:"timestamp"`
}

// PositionSubscriber validates feed messages and queues them for evaluation.
type PositionSubscriber struct {
	client  paho.Client
	topic   string
	service submitter
	log     *slog.Logger
	ctx     context.Context //nolint:containedctx // paho callbacks carry no context
}

// Connect dials the broker.
func Connect(broker, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return client, nil
}

// NewPositionSubscriber creates a subscriber; an empty topic uses DefaultTopic.
func NewPositionSubscriber(client paho.Client, topic string, service submitter, log *slog.Logger) *PositionSubscriber {
	if topic == "" {
		topic = DefaultTopic
	}

	return &PositionSubscriber{client: client, topic: topic, service: service, log: log, ctx: context.Background()}
}

// Start subscribes to the position topic. Messages are submitted with ctx until it is done.
func (s *PositionSubscriber) Start(ctx context.Context) error {
	s.ctx = ctx

	token := s.client.Subscribe(s.topic, 1, s.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.topic, err)
	}

	s.log.InfoContext(ctx, "Subscribed to position feed", "topic", s.topic)

	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (s *PositionSubscriber) Stop() {
	const quiesceMillis = 250

	s.client.Unsubscribe(s.topic).Wait()
	s.client.Disconnect(quiesceMillis)
}

func (s *PositionSubscriber) handleMessage(_ paho.Client, msg paho.Message) {
	position, err := decodePosition(msg.Payload())
	if err != nil {
		s.log.WarnContext(s.ctx, "Invalid position message", "topic", msg.Topic(), "error", err)
		return
	}

	if err = s.service.Submit(s.ctx, position); err != nil {
		s.log.WarnContext(s.ctx, "Failed to queue position", "vessel", position.VesselID, "error", err)
	}
}

// decodePosition parses and validates one feed message.
func decodePosition(payload []byte) (models.VesselPosition, error) {
	var raw positionMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.VesselPosition{}, fmt.Errorf("decode position: %w", err)
	}

	if raw.VesselID == "" {
		return models.VesselPosition{}, errMissingVessel
	}
	if raw.Latitude == nil || raw.Longitude == nil {
		return models.VesselPosition{}, fmt.Errorf("%w: latitude and longitude are required",
			models.ErrInvalidCoordinate)
	}

	position := models.VesselPosition{
		VesselID: raw.VesselID,
		Reading: models.VesselReading{
			Position:       models.Coordinate{Latitude: *raw.Latitude, Longitude: *raw.Longitude},
			SpeedKnots:     raw.Speed,
			HeadingDegrees: raw.Direction,
		},
	}
	if raw.Timestamp > 0 {
		position.ReportedAt = time.Unix(raw.Timestamp, 0)
	}

	if err := position.Reading.Validate(); err != nil {
		return models.VesselPosition{}, err
	}

	return position, nil
}
