package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("SEAWATCH_ENV", "local")
	t.Setenv("SEAWATCH_HTTP_PORT", "9000")
	t.Setenv("SEAWATCH_WORKERS", "8")
	t.Setenv("SEAWATCH_SAFE_DISTANCE_KM", "15.5")
	t.Setenv("SEAWATCH_CLASSIFIER_TYPE", "remote")
	t.Setenv("SEAWATCH_CLASSIFIER_URL", "http://model:8501/predict")
	t.Setenv("SEAWATCH_CLASSIFIER_TIMEOUT", "500ms")
	t.Setenv("SEAWATCH_NOTIFIER_TYPE", "twilio")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")
	t.Setenv("ALERT_RECIPIENT_NUMBER", "+919800000000")
	t.Setenv("SEAWATCH_REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, 8, cfg.Workers)
	assert.InDelta(t, 15.5, cfg.Geofence.SafeDistanceKm, 1e-9)
	assert.Equal(t, "remote", cfg.Classifier.Type)
	assert.Equal(t, "http://model:8501/predict", cfg.Classifier.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Classifier.Timeout)
	assert.Equal(t, 2, cfg.Classifier.Retries)
	assert.Equal(t, "twilio", cfg.Notifier.Type)
	assert.Equal(t, config.TwilioConfig{
		AccountSID: "AC123", AuthToken: "token", From: "+15005550006", To: "+919800000000",
	}, cfg.Notifier.Twilio)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.Cooldown)
	assert.Equal(t, "seawatch/vessels/+/position", cfg.MQTT.Topic)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, 4, cfg.Workers)
	assert.InDelta(t, 12.0, cfg.Geofence.SafeDistanceKm, 1e-9)
	assert.Equal(t, "none", cfg.Classifier.Type)
	assert.Equal(t, 2*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, "log", cfg.Notifier.Type)
	assert.Equal(t, "none", cfg.Locator.Type)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		env   string
		panic string
	}{
		{"SEAWATCH_HEALTH_PORT", "failed to parse port for monitoring server from configuration"},
		{"SEAWATCH_HTTP_PORT", "failed to parse port for API server from configuration"},
		{"SEAWATCH_WORKERS", "failed to parse workers from configuration, must be an integer types"},
		{"SEAWATCH_SAFE_DISTANCE_KM", "failed to parse safe distance from configuration"},
		{"SEAWATCH_CLASSIFIER_TIMEOUT", "failed to parse classifier timeout from configuration"},
		{"SEAWATCH_CLASSIFIER_RETRIES", "failed to parse classifier retries from configuration"},
		{"SEAWATCH_ALERT_COOLDOWN", "failed to parse alert cooldown from configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, "error_value")

			assert.PanicsWithValue(t, tt.panic, func() {
				config.MustLoad()
			})
		})
	}
}
