package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/classifier"
	"github.com/UnknownOlympus/seawatch/internal/locator"
	"github.com/UnknownOlympus/seawatch/internal/metrics"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/UnknownOlympus/seawatch/internal/notify"
	"github.com/UnknownOlympus/seawatch/internal/repository"
	"github.com/UnknownOlympus/seawatch/internal/risk"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultQueueSize is the capacity of the position queue feeding the workers.
const DefaultQueueSize = 256

// MonitorService evaluates vessel readings against the current geofence and
// dispatches an alert for every result that is not safe.
type MonitorService struct {
	log               *slog.Logger          // Logger for logging service activities
	store             *boundary.Store       // Current geofence
	classifier        classifier.Classifier // Behavioral classifier, nil when disabled
	classifierTimeout time.Duration         // Upper bound for one evaluation, zero for none
	notifier          notify.Notifier       // Alert delivery channel
	notifierName      string                // Name of the notifier for the audit log
	cooldown          *notify.Cooldown      // Repeated alert suppression, optional
	locator           locator.Provider      // Place lookup for alert text, optional
	repo              repository.Interface  // Alert audit log, optional
	metrics           *metrics.Metrics      // Metrics for tracking service performance
	numWorkers        int                   // Number of concurrent workers for feed positions
	jobs              chan models.VesselPosition
	now               func() time.Time
}

// NewMonitorService creates a new instance of MonitorService.
// Optional collaborators are attached with the With* methods before Run is called.
func NewMonitorService(
	log *slog.Logger,
	store *boundary.Store,
	clf classifier.Classifier,
	notifier notify.Notifier,
	notifierName string,
	metrics *metrics.Metrics,
	numWorkers int,
) *MonitorService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &MonitorService{
		log:          log,
		store:        store,
		classifier:   clf,
		notifier:     notifier,
		notifierName: notifierName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		jobs:         make(chan models.VesselPosition, DefaultQueueSize),
		now:          time.Now,
	}
}

// WithClassifierTimeout bounds every evaluation, classifier call included.
func (ms *MonitorService) WithClassifierTimeout(timeout time.Duration) *MonitorService {
	ms.classifierTimeout = timeout
	return ms
}

// WithCooldown enables suppression of repeated alerts.
func (ms *MonitorService) WithCooldown(cooldown *notify.Cooldown) *MonitorService {
	ms.cooldown = cooldown
	return ms
}

// WithLocator enables place names in alert text.
func (ms *MonitorService) WithLocator(provider locator.Provider) *MonitorService {
	ms.locator = provider
	return ms
}

// WithRepository enables the alert audit log.
func (ms *MonitorService) WithRepository(repo repository.Interface) *MonitorService {
	ms.repo = repo
	return ms
}

// Check evaluates one reading and dispatches an alert when the result is not safe.
// Only evaluation errors are returned; delivery failures are logged and counted.
func (ms *MonitorService) Check(
	ctx context.Context,
	vesselID string,
	reading models.VesselReading,
) (models.ClassificationResult, error) {
	return ms.check(ctx, vesselID, reading, ms.now())
}

func (ms *MonitorService) check(
	ctx context.Context,
	vesselID string,
	reading models.VesselReading,
	occurredAt time.Time,
) (models.ClassificationResult, error) {
	evalCtx := ctx
	if ms.classifierTimeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, ms.classifierTimeout)
		defer cancel()
	}

	clf := ms.classifier
	if clf != nil {
		clf = timedClassifier{next: clf, duration: ms.metrics.ClassifierSeconds}
	}

	result, err := risk.Evaluate(evalCtx, reading, ms.store.Load(), clf)

	if err != nil {
		ms.metrics.Evaluations.WithLabelValues(models.StatusError.String()).Inc()
		if errors.Is(err, models.ErrInvalidCoordinate) || errors.Is(err, models.ErrInvalidReading) {
			ms.metrics.InvalidReadings.Inc()
			ms.log.DebugContext(ctx, "Rejected invalid reading", "vessel", vesselID, "error", err)
		} else {
			ms.log.ErrorContext(ctx, "Failed to evaluate reading", "vessel", vesselID, "error", err)
		}
		return result, err
	}

	ms.metrics.Evaluations.WithLabelValues(result.StatusCode.String()).Inc()
	ms.metrics.BoundaryDistance.Observe(result.DistanceToBoundaryKm)

	if result.ClassifierSkipped {
		ms.metrics.ClassifierSkipped.Inc()
		if ms.classifier != nil {
			ms.log.WarnContext(ctx, "Behavioral classifier unavailable, using geometry only",
				"vessel", vesselID, "reason", result.SkipReason)
		}
	}

	if result.StatusCode.IsAlert() {
		ms.dispatch(context.WithoutCancel(ctx), vesselID, reading, result, occurredAt)
	}

	return result, nil
}

// dispatch delivers an alert: cooldown, place lookup, notification, audit record.
// No step can fail the evaluation that triggered it.
func (ms *MonitorService) dispatch(
	ctx context.Context,
	vesselID string,
	reading models.VesselReading,
	result models.ClassificationResult,
	occurredAt time.Time,
) {
	if ms.cooldown != nil && vesselID != "" {
		allowed, err := ms.cooldown.Allow(ctx, vesselID, result.StatusCode)
		if err != nil {
			ms.log.WarnContext(ctx, "Cooldown unavailable, sending alert anyway", "vessel", vesselID, "error", err)
		} else if !allowed {
			ms.metrics.Alerts.WithLabelValues("suppressed").Inc()
			ms.log.DebugContext(ctx, "Alert suppressed by cooldown", "vessel", vesselID, "status", result.StatusCode)
			return
		}
	}

	event := models.AlertEvent{
		ID:         uuid.New(),
		VesselID:   vesselID,
		Reading:    reading,
		Result:     result,
		OccurredAt: occurredAt,
	}

	if ms.locator != nil {
		place, err := ms.locator.Reverse(ctx, reading.Position)
		switch {
		case errors.Is(err, locator.ErrNoPlace):
			ms.log.DebugContext(ctx, "No place near vessel", "vessel", vesselID)
		case err != nil:
			ms.log.WarnContext(ctx, "Failed to look up place", "vessel", vesselID, "error", err)
		default:
			event.Place = place
		}
	}

	record := models.AlertRecord{
		ID:         event.ID,
		VesselID:   vesselID,
		Latitude:   reading.Position.Latitude,
		Longitude:  reading.Position.Longitude,
		StatusCode: result.StatusCode,
		DistanceKm: result.DistanceToBoundaryKm,
		Message:    notify.AlertText(event),
		Notifier:   ms.notifierName,
		Delivered:  true,
		OccurredAt: occurredAt,
	}

	if err := ms.notifier.Notify(ctx, event); err != nil {
		ms.metrics.Alerts.WithLabelValues("failed").Inc()
		ms.log.ErrorContext(ctx, "Failed to deliver alert", "vessel", vesselID, "event", event.ID, "error", err)
		record.Delivered = false
		record.DeliveryErr = err.Error()
	} else {
		ms.metrics.Alerts.WithLabelValues("sent").Inc()
		ms.log.InfoContext(ctx, "Alert delivered", "vessel", vesselID, "event", event.ID,
			"status", result.StatusCode.String())
	}

	if ms.repo == nil {
		return
	}
	if err := ms.repo.InsertAlert(ctx, record); err != nil {
		ms.log.ErrorContext(ctx, "Failed to record alert", "event", event.ID, "error", err)
	}
}

// Submit queues a feed position for the worker pool.
// It blocks while the queue is full and gives up when ctx is done.
func (ms *MonitorService) Submit(ctx context.Context, position models.VesselPosition) error {
	select {
	case ms.jobs <- position:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the worker pool and blocks until ctx is cancelled and every worker has returned.
func (ms *MonitorService) Run(ctx context.Context) {
	ms.log.InfoContext(ctx, "Monitor service started", "num_workers", ms.numWorkers)

	var wgr sync.WaitGroup
	for i := 1; i <= ms.numWorkers; i++ {
		wgr.Add(1)
		go ms.worker(ctx, i, &wgr)
	}

	wgr.Wait()
	ms.log.InfoContext(ctx, "Monitor service stopped.")
}

// worker evaluates queued positions until ctx is cancelled.
func (ms *MonitorService) worker(ctx context.Context, idx int, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case position := <-ms.jobs:
			ms.metrics.ActiveWorkers.Inc()
			ms.log.DebugContext(ctx, "Processing position", "worker", idx, "vessel", position.VesselID)

			occurredAt := position.ReportedAt
			if occurredAt.IsZero() {
				occurredAt = ms.now()
			}
			if _, err := ms.check(ctx, position.VesselID, position.Reading, occurredAt); err != nil {
				ms.log.WarnContext(ctx, "Dropped feed position", "worker", idx, "vessel", position.VesselID,
					"error", err)
			}

			ms.metrics.ActiveWorkers.Dec()
		}
	}
}

// timedClassifier observes the duration of every classifier call.
type timedClassifier struct {
	next     classifier.Classifier
	duration prometheus.Observer
}

func (tc timedClassifier) Predict(ctx context.Context, features classifier.Features) (int, error) {
	startTime := time.Now()
	defer func() { tc.duration.Observe(time.Since(startTime).Seconds()) }()

	return tc.next.Predict(ctx, features)
}
