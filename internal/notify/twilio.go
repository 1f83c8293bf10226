package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"
)

// Common errors for Twilio notifier.
var (
	ErrTwilioUnauthorized = errors.New("twilio API unauthorized (invalid account SID or token)")
	ErrTwilioCredentials  = errors.New("twilio credentials are incomplete")
)

// CallCreator is the part of the Twilio REST client used to place calls.
// This allows for easy mocking in tests.
type CallCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

// TwilioConfig holds the account and phone numbers used for alert calls.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string // From is the Twilio number placing the call.
	To         string // To is the number receiving the alert.
}

// Validate reports ErrTwilioCredentials when a field is missing.
func (c TwilioConfig) Validate() error {
	var missing []string
	for name, value := range map[string]string{
		"TWILIO_ACCOUNT_SID":     c.AccountSID,
		"TWILIO_AUTH_TOKEN":      c.AuthToken,
		"TWILIO_PHONE_NUMBER":    c.From,
		"ALERT_RECIPIENT_NUMBER": c.To,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing %s", ErrTwilioCredentials, strings.Join(missing, ", "))
	}

	return nil
}

// TwilioNotifier places a voice call that reads the alert out loud.
type TwilioNotifier struct {
	calls CallCreator  // Twilio calls API
	cfg   TwilioConfig // Account and numbers
	log   *slog.Logger // Logger for logging operations
}

// NewTwilioNotifier creates a Twilio notifier backed by the Twilio REST client.
func NewTwilioNotifier(cfg TwilioConfig, log *slog.Logger) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return NewTwilioNotifierWithClient(client.Api, cfg, log)
}

// NewTwilioNotifierWithClient allows injecting a custom calls API.
func NewTwilioNotifierWithClient(calls CallCreator, cfg TwilioConfig, log *slog.Logger) *TwilioNotifier {
	return &TwilioNotifier{calls: calls, cfg: cfg, log: log}
}

// Notify places the alert call.
func (tn *TwilioNotifier) Notify(ctx context.Context, event models.AlertEvent) error {
	script, err := TwiML(AlertText(event))
	if err != nil {
		return err
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(tn.cfg.To)
	params.SetFrom(tn.cfg.From)
	params.SetTwiml(script)

	call, err := tn.calls.CreateCall(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) &&
			(restErr.Status == http.StatusUnauthorized || restErr.Status == http.StatusForbidden) {
			return ErrTwilioUnauthorized
		}
		tn.log.ErrorContext(ctx, "Twilio API error", "error", err, "event", event.ID)
		return fmt.Errorf("failed to place alert call: %w", err)
	}

	var sid string
	if call != nil && call.Sid != nil {
		sid = *call.Sid
	}
	tn.log.InfoContext(ctx, "Alert call initiated", "call_sid", sid, "event", event.ID)

	return nil
}

// TwiML builds the call script: the alert, a pause, and an automated-call notice.
func TwiML(message string) (string, error) {
	script, err := twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: "Alert! " + message + " Please check the monitoring system immediately."},
		&twiml.VoicePause{Length: "1"},
		&twiml.VoiceSay{Message: "This is an automated call from the boat border monitoring system."},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build call script: %w", err)
	}

	return script, nil
}
