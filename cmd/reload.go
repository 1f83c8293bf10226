package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/config"
	"github.com/UnknownOlympus/seawatch/internal/metrics"
)

// watchGeofenceReload rebuilds the geofence on SIGHUP until ctx is done.
// A file that fails validation leaves the current geofence in place.
func watchGeofenceReload(
	ctx context.Context,
	log *slog.Logger,
	cfg config.GeofenceConfig,
	store *boundary.Store,
	appMetrics *metrics.Metrics,
) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			reloadGeofence(ctx, log, cfg, store, appMetrics)
		}
	}
}

func reloadGeofence(
	ctx context.Context,
	log *slog.Logger,
	cfg config.GeofenceConfig,
	store *boundary.Store,
	appMetrics *metrics.Metrics,
) {
	geofence, err := config.LoadGeofence(cfg.File, cfg.SafeDistanceKm)
	if err == nil {
		_, err = store.Replace(geofence)
	}
	if err != nil {
		appMetrics.GeofenceReloads.WithLabelValues("failure").Inc()
		log.ErrorContext(ctx, "Geofence reload failed, keeping current geofence", "file", cfg.File, "error", err)
		return
	}

	appMetrics.GeofenceReloads.WithLabelValues("success").Inc()
	log.InfoContext(ctx, "Geofence reloaded", "file", cfg.File, "boundary_points", len(geofence.Boundary()),
		"safe_distance_km", geofence.SafeDistanceKm())
}
