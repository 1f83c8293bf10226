package notify

import (
	"errors"
	"fmt"
	"log/slog"
)

// Type represents the alert delivery channel.
type Type string

const (
	// TypeLog writes alerts to the service log.
	TypeLog Type = "log"
	// TypeTwilio places a voice call through Twilio.
	TypeTwilio Type = "twilio"
	// TypeRabbitMQ publishes alert events to RabbitMQ.
	TypeRabbitMQ Type = "rabbitmq"
)

// Config holds configuration for creating a notifier.
type Config struct {
	Type        Type         // Type of notifier to create
	Twilio      TwilioConfig // Twilio account (twilio)
	RabbitMQURL string       // Broker URL (rabbitmq)
	Logger      *slog.Logger // Logger for the notifier
}

// New creates a notifier based on the provided configuration.
func New(config Config) (Notifier, error) {
	switch config.Type {
	case TypeLog:
		return NewLogNotifier(config.Logger), nil
	case TypeTwilio:
		if err := config.Twilio.Validate(); err != nil {
			return nil, err
		}
		return NewTwilioNotifier(config.Twilio, config.Logger), nil
	case TypeRabbitMQ:
		if config.RabbitMQURL == "" {
			return nil, errors.New("URL is required for RabbitMQ notifier")
		}
		notifier, err := DialRabbitMQ(config.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		return notifier, nil
	default:
		return nil, fmt.Errorf("unsupported notifier type: %s", config.Type)
	}
}
