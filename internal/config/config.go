package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the boundary monitor.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - HTTPPort: The port of the check-point API.
// - HealthPort: The port for the monitoring server (healthz, metrics).
// - Workers: The number of concurrent workers evaluating feed positions.
// - Geofence: Where the boundary comes from and the safe distance.
// - Classifier, Notifier, Locator: Adapter selection and credentials.
// - Redis, MQTT, Database: Optional infrastructure; an empty address disables it.
type Config struct {
	Env        string           `mapstructure:"env"`         // Env is the current environment: local, development, production.
	HTTPPort   int              `mapstructure:"http_port"`   // HTTPPort is the check-point API port.
	HealthPort int              `mapstructure:"health_port"` // HealthPort is the monitoring server port.
	Workers    int              `mapstructure:"workers"`     // Workers is the feed worker pool size.
	Geofence   GeofenceConfig   `mapstructure:"geofence"`    // Geofence source and safe distance.
	Classifier ClassifierConfig `mapstructure:"classifier"`  // Classifier selects the behavioral model.
	Notifier   NotifierConfig   `mapstructure:"notifier"`    // Notifier selects the alert channel.
	Locator    LocatorConfig    `mapstructure:"locator"`     // Locator selects reverse geocoding.
	Redis      RedisConfig      `mapstructure:"redis"`       // Redis backs the alert cooldown.
	MQTT       MQTTConfig       `mapstructure:"mqtt"`        // MQTT is the position feed.
	Database   PostgresConfig   `mapstructure:"postgres"`    // Database holds the alert audit log.
}

// GeofenceConfig points at an optional geofence file.
type GeofenceConfig struct {
	File           string  `mapstructure:"file"`             // File is a YAML or JSON geofence; empty uses the built-in one.
	SafeDistanceKm float64 `mapstructure:"safe_distance_km"` // SafeDistanceKm applies when the file has none.
}

// ClassifierConfig selects and tunes the behavioral classifier.
type ClassifierConfig struct {
	Type      string        `mapstructure:"type"`       // Type is none, remote or linear.
	URL       string        `mapstructure:"url"`        // URL of the remote model server.
	ModelPath string        `mapstructure:"model"`      // ModelPath of the linear model artifact.
	Timeout   time.Duration `mapstructure:"timeout"`    // Timeout bounds one evaluation.
	Retries   int           `mapstructure:"retries"`    // Retries of the remote adapter.
	RateLimit int           `mapstructure:"rate_limit"` // RateLimit of the remote adapter, requests per second.
}

// NotifierConfig selects the alert channel.
type NotifierConfig struct {
	Type        string       `mapstructure:"type"`         // Type is log, twilio or rabbitmq.
	RabbitMQURL string       `mapstructure:"rabbitmq_url"` // RabbitMQURL of the broker.
	Twilio      TwilioConfig `mapstructure:"twilio"`       // Twilio account used for calls.
}

// TwilioConfig holds the Twilio account and phone numbers.
type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"phone_number"`
	To         string `mapstructure:"recipient"`
}

// LocatorConfig selects reverse geocoding for alert text.
type LocatorConfig struct {
	Type   string `mapstructure:"type"` // Type is none, google or nominatim.
	APIKey string `mapstructure:"key"`  // APIKey for Google.
}

// RedisConfig enables the alert cooldown.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`     // Addr of the redis server; empty disables the cooldown.
	Password string        `mapstructure:"password"` // Password of the redis server.
	Cooldown time.Duration `mapstructure:"cooldown"` // Cooldown window per vessel and status.
}

// MQTTConfig enables the position feed.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`    // Broker URL; empty disables the feed.
	Topic    string `mapstructure:"topic"`     // Topic filter for vessel positions.
	ClientID string `mapstructure:"client_id"` // ClientID of the subscriber.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address; empty disables the audit log.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"db_name"`  // Name is the name of the database.
}

// envBindings maps configuration keys to environment variables.
var envBindings = map[string]string{
	"env":                          "SEAWATCH_ENV",
	"http_port":                    "SEAWATCH_HTTP_PORT",
	"health_port":                  "SEAWATCH_HEALTH_PORT",
	"workers":                      "SEAWATCH_WORKERS",
	"geofence.file":                "SEAWATCH_GEOFENCE_FILE",
	"geofence.safe_distance_km":    "SEAWATCH_SAFE_DISTANCE_KM",
	"classifier.type":              "SEAWATCH_CLASSIFIER_TYPE",
	"classifier.url":               "SEAWATCH_CLASSIFIER_URL",
	"classifier.model":             "SEAWATCH_CLASSIFIER_MODEL",
	"classifier.timeout":           "SEAWATCH_CLASSIFIER_TIMEOUT",
	"classifier.retries":           "SEAWATCH_CLASSIFIER_RETRIES",
	"classifier.rate_limit":        "SEAWATCH_CLASSIFIER_RATE_LIMIT",
	"notifier.type":                "SEAWATCH_NOTIFIER_TYPE",
	"notifier.rabbitmq_url":        "SEAWATCH_RABBITMQ_URL",
	"notifier.twilio.account_sid":  "TWILIO_ACCOUNT_SID",
	"notifier.twilio.auth_token":   "TWILIO_AUTH_TOKEN",
	"notifier.twilio.phone_number": "TWILIO_PHONE_NUMBER",
	"notifier.twilio.recipient":    "ALERT_RECIPIENT_NUMBER",
	"locator.type":                 "SEAWATCH_LOCATOR_TYPE",
	"locator.key":                  "SEAWATCH_LOCATOR_KEY",
	"redis.addr":                   "SEAWATCH_REDIS_ADDR",
	"redis.password":               "SEAWATCH_REDIS_PASSWORD",
	"redis.cooldown":               "SEAWATCH_ALERT_COOLDOWN",
	"mqtt.broker":                  "SEAWATCH_MQTT_BROKER",
	"mqtt.topic":                   "SEAWATCH_MQTT_TOPIC",
	"mqtt.client_id":               "SEAWATCH_MQTT_CLIENT_ID",
	"postgres.host":                "DB_HOST",
	"postgres.port":                "DB_PORT",
	"postgres.user":                "DB_USERNAME",
	"postgres.password":            "DB_PASSWORD",
	"postgres.db_name":             "DB_NAME",
}

// MustLoad reads the .env file if present, then the environment, and returns the configuration.
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	healthPort, err := strconv.Atoi(v.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	httpPort, err := strconv.Atoi(v.GetString("http_port"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	safeKm, err := strconv.ParseFloat(v.GetString("geofence.safe_distance_km"), 64)
	if err != nil {
		panic("failed to parse safe distance from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("classifier.timeout"))
	if err != nil {
		panic("failed to parse classifier timeout from configuration")
	}

	retries, err := strconv.Atoi(v.GetString("classifier.retries"))
	if err != nil {
		panic("failed to parse classifier retries from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("classifier.rate_limit"))
	if err != nil {
		panic("failed to parse classifier rate limit from configuration")
	}

	cooldown, err := time.ParseDuration(v.GetString("redis.cooldown"))
	if err != nil {
		panic("failed to parse alert cooldown from configuration")
	}

	return &Config{
		Env:        v.GetString("env"),
		HTTPPort:   httpPort,
		HealthPort: healthPort,
		Workers:    workers,
		Geofence: GeofenceConfig{
			File:           v.GetString("geofence.file"),
			SafeDistanceKm: safeKm,
		},
		Classifier: ClassifierConfig{
			Type:      v.GetString("classifier.type"),
			URL:       v.GetString("classifier.url"),
			ModelPath: v.GetString("classifier.model"),
			Timeout:   timeout,
			Retries:   retries,
			RateLimit: rateLimit,
		},
		Notifier: NotifierConfig{
			Type:        v.GetString("notifier.type"),
			RabbitMQURL: v.GetString("notifier.rabbitmq_url"),
			Twilio: TwilioConfig{
				AccountSID: v.GetString("notifier.twilio.account_sid"),
				AuthToken:  v.GetString("notifier.twilio.auth_token"),
				From:       v.GetString("notifier.twilio.phone_number"),
				To:         v.GetString("notifier.twilio.recipient"),
			},
		},
		Locator: LocatorConfig{
			Type:   v.GetString("locator.type"),
			APIKey: v.GetString("locator.key"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			Cooldown: cooldown,
		},
		MQTT: MQTTConfig{
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("http_port", "8000")
	v.SetDefault("health_port", "8080")
	v.SetDefault("workers", "4")
	v.SetDefault("geofence.safe_distance_km", "12")
	v.SetDefault("classifier.type", "none")
	v.SetDefault("classifier.timeout", "2s")
	v.SetDefault("classifier.retries", "2")
	v.SetDefault("classifier.rate_limit", "20")
	v.SetDefault("notifier.type", "log")
	v.SetDefault("locator.type", "none")
	v.SetDefault("redis.cooldown", "5m")
	v.SetDefault("mqtt.topic", "seawatch/vessels/+/position")
	v.SetDefault("mqtt.client_id", "seawatch-monitor")
	v.SetDefault("postgres.port", "5432")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return v
}
