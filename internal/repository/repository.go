package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// Repository stores the alert audit log.
type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	InsertAlert(ctx context.Context, record models.AlertRecord) error
	FetchRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
