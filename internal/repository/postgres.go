package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/google/uuid"
)

// EnsureSchema creates the alert log table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS alert_log (
			alert_id     UUID PRIMARY KEY,
			vessel_id    TEXT NOT NULL DEFAULT '',
			latitude     DOUBLE PRECISION NOT NULL,
			longitude    DOUBLE PRECISION NOT NULL,
			status_code  SMALLINT NOT NULL,
			distance_km  DOUBLE PRECISION NOT NULL,
			message      TEXT NOT NULL,
			notifier     TEXT NOT NULL,
			delivered    BOOLEAN NOT NULL,
			delivery_err TEXT,
			occurred_at  TIMESTAMPTZ NOT NULL
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create alert_log table: %w", err)
	}

	return nil
}

// InsertAlert appends one dispatched alert to the audit log.
// An empty delivery error is stored as NULL.
func (r *Repository) InsertAlert(ctx context.Context, record models.AlertRecord) error {
	query := `
		INSERT INTO alert_log (
			alert_id, vessel_id, latitude, longitude, status_code, distance_km,
			message, notifier, delivered, delivery_err, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11);
	`

	_, err := r.db.Exec(ctx, query,
		record.ID.String(), record.VesselID, record.Latitude, record.Longitude, int(record.StatusCode), record.DistanceKm,
		record.Message, record.Notifier, record.Delivered, record.DeliveryErr, record.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert record: %w", err)
	}

	r.log.DebugContext(ctx, "Alert recorded", "id", record.ID, "vessel", record.VesselID)

	return nil
}

// FetchRecentAlerts returns the newest alert records first.
func (r *Repository) FetchRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	query := `
		SELECT alert_id, vessel_id, latitude, longitude, status_code, distance_km,
			message, notifier, delivered, COALESCE(delivery_err, ''), occurred_at
		FROM alert_log
		ORDER BY occurred_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent alerts: %w", err)
	}
	defer rows.Close()

	var records []models.AlertRecord
	for rows.Next() {
		var (
			record models.AlertRecord
			id     string
			status int
		)
		if errScan := rows.Scan(
			&id, &record.VesselID, &record.Latitude, &record.Longitude, &status, &record.DistanceKm,
			&record.Message, &record.Notifier, &record.Delivered, &record.DeliveryErr, &record.OccurredAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan alert record: %w", errScan)
		}
		if record.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse alert id %q: %w", id, err)
		}
		record.StatusCode = models.StatusCode(status)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return records, nil
}
