// Package httpapi exposes the boundary check over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 500
)

type checker interface {
	Check(ctx context.Context, vesselID string, reading models.VesselReading) (models.ClassificationResult, error)
}

type alertLog interface {
	FetchRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error)
}

type checkPointRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Speed     float64  `json:"speed"`
	Direction float64  `json:"direction"`
	VesselID  string   `json:"vessel_id"`
}

type checkPointResponse struct {
	InsideSafeZone     bool    `json:"inside_safe_zone"`
	IsSuspicious       bool    `json:"is_suspicious"`
	StatusCode         int     `json:"status_code"`
	Status             string  `json:"status"`
	DistanceToBoundary float64 `json:"distance_to_boundary"`
	Message            string  `json:"message"`
	ModelPrediction    int     `json:"model_prediction"`
	ClassifierSkipped  bool    `json:"classifier_skipped"`
	Warning            string  `json:"warning,omitempty"`
}

// geofenceResponse mirrors the geofence file: coastlines sit next to the boundary under their
// own names (tamil_nadu_points, sri_lanka_points for the default region).
type geofenceResponse map[string]any

type alertResponse struct {
	ID          string  `json:"id"`
	VesselID    string  `json:"vessel_id,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Status      string  `json:"status"`
	DistanceKm  float64 `json:"distance_km"`
	Message     string  `json:"message"`
	Notifier    string  `json:"notifier"`
	Delivered   bool    `json:"delivered"`
	DeliveryErr string  `json:"delivery_error,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// Handler serves the check-point and geofence endpoints.
type Handler struct {
	log      *slog.Logger
	checker  checker
	store    *boundary.Store
	alertLog alertLog
}

// NewHandler creates the handler. alerts may be nil when no audit log is configured.
func NewHandler(log *slog.Logger, checker checker, store *boundary.Store, alerts alertLog) *Handler {
	return &Handler{log: log, checker: checker, store: store, alertLog: alerts}
}

// Register mounts the routes on r.
func (h *Handler) Register(r *gin.RouterGroup) {
	r.POST("/check-point", h.CheckPoint)
	r.GET("/geofence", h.Geofence)
	r.GET("/geofence.geojson", h.GeofenceGeoJSON)
	if h.alertLog != nil {
		r.GET("/alerts", h.RecentAlerts)
	}
}

// CheckPoint evaluates one reading. Invalid input is answered with 400 and no partial result.
func (h *Handler) CheckPoint(c *gin.Context) {
	var req checkPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	reading := models.VesselReading{
		Position:       models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude},
		SpeedKnots:     req.Speed,
		HeadingDegrees: req.Direction,
	}

	result, err := h.checker.Check(c.Request.Context(), req.VesselID, reading)
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate), errors.Is(err, models.ErrInvalidReading):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.log.ErrorContext(c.Request.Context(), "Check point failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate position"})
		return
	}

	resp := checkPointResponse{
		InsideSafeZone:     result.InsideSafeZone,
		IsSuspicious:       result.IsSuspicious,
		StatusCode:         int(result.StatusCode),
		Status:             result.StatusCode.String(),
		DistanceToBoundary: result.DistanceToBoundaryKm,
		Message:            result.Message,
		ModelPrediction:    result.ModelPrediction,
		ClassifierSkipped:  result.ClassifierSkipped,
	}
	if result.ClassifierSkipped {
		resp.Warning = result.SkipReason
	}

	c.JSON(http.StatusOK, resp)
}

// Geofence returns the configuration currently in use.
func (h *Handler) Geofence(c *gin.Context) {
	cfg := h.store.Load()

	resp := geofenceResponse{}
	for name, line := range cfg.Coastlines() {
		resp[name] = line
	}
	resp["boundary_line"] = cfg.Boundary()
	resp["safe_distance_km"] = cfg.SafeDistanceKm()
	resp["center"] = cfg.MapCenter()
	resp["zoom_level"] = cfg.ZoomLevel()

	c.JSON(http.StatusOK, resp)
}

// GeofenceGeoJSON returns the geofence as a GeoJSON feature collection for map clients.
func (h *Handler) GeofenceGeoJSON(c *gin.Context) {
	fc, err := h.store.Load().FeatureCollection()
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to build GeoJSON", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build geojson"})
		return
	}

	body, err := json.Marshal(fc)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to encode GeoJSON", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build geojson"})
		return
	}

	c.Data(http.StatusOK, "application/geo+json", body)
}

// RecentAlerts lists the newest entries of the alert audit log.
func (h *Handler) RecentAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = min(parsed, maxAlertLimit)
	}

	records, err := h.alertLog.FetchRecentAlerts(c.Request.Context(), limit)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to fetch alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	results := make([]alertResponse, len(records))
	for i, record := range records {
		results[i] = alertResponse{
			ID:          record.ID.String(),
			VesselID:    record.VesselID,
			Latitude:    record.Latitude,
			Longitude:   record.Longitude,
			Status:      record.StatusCode.String(),
			DistanceKm:  record.DistanceKm,
			Message:     record.Message,
			Notifier:    record.Notifier,
			Delivered:   record.Delivered,
			DeliveryErr: record.DeliveryErr,
			Timestamp:   record.OccurredAt.Unix(),
		}
	}

	c.JSON(http.StatusOK, results)
}
