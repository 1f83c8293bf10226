package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// Notifier is an interface that defines a method for delivering an alert event
// to the people watching the boundary.
type Notifier interface {
	Notify(ctx context.Context, event models.AlertEvent) error
}

// AlertText renders the spoken or written alert for an event.
func AlertText(event models.AlertEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suspicious boat detected at coordinates: %.4f, %.4f.",
		event.Reading.Position.Latitude, event.Reading.Position.Longitude)
	if event.VesselID != "" {
		fmt.Fprintf(&b, " Vessel: %s.", event.VesselID)
	}
	if event.Place != "" {
		fmt.Fprintf(&b, " Near %s.", event.Place)
	}
	fmt.Fprintf(&b, " Speed: %.1f knots, Direction: %.0f degrees. %s",
		event.Reading.SpeedKnots, event.Reading.HeadingDegrees, event.Result.Message)

	return b.String()
}
