package notify

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// LogNotifier writes alerts to the log. It is the fallback when no channel is configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier that logs alerts at warn level.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the alert.
func (ln *LogNotifier) Notify(ctx context.Context, event models.AlertEvent) error {
	ln.log.WarnContext(ctx, "Boundary alert",
		"event", event.ID,
		"vessel", event.VesselID,
		"status", event.Result.StatusCode.String(),
		"distance_km", event.Result.DistanceToBoundaryKm,
		"text", AlertText(event),
	)

	return nil
}
