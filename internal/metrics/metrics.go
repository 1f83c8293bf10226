package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Evaluations       *prometheus.CounterVec
	InvalidReadings   prometheus.Counter
	ClassifierSkipped prometheus.Counter
	ClassifierSeconds prometheus.Histogram
	BoundaryDistance  prometheus.Histogram
	Alerts            *prometheus.CounterVec
	ActiveWorkers     prometheus.Gauge
	GeofenceReloads   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Evaluations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_evaluations_total",
			Help: "Total number of evaluated vessel readings by resulting status.",
		}, []string{"status"}),
		InvalidReadings: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "seawatch_invalid_readings_total",
			Help: "Total number of readings rejected as invalid.",
		}),
		ClassifierSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "seawatch_classifier_skipped_total",
			Help: "Total number of evaluations that fell back to geometry only.",
		}),
		ClassifierSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "seawatch_classifier_duration_seconds",
			Help:    "Duration of behavioral classifier calls.",
			Buckets: prometheus.DefBuckets,
		}),
		BoundaryDistance: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "seawatch_boundary_distance_km",
			Help:    "Distance of evaluated vessels to the boundary in kilometres.",
			Buckets: []float64{1, 2, 5, 12, 25, 50, 100, 200},
		}),
		Alerts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_alerts_total",
			Help: "Total number of alerts by outcome (sent, failed, suppressed).",
		}, []string{"outcome"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "seawatch_active_workers",
			Help: "Current number of workers evaluating feed positions.",
		}),
		GeofenceReloads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "seawatch_geofence_reloads_total",
			Help: "Total number of geofence reload attempts by status.",
		}, []string{"status"}),
	}
}
