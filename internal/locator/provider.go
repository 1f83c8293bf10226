// Package locator turns a vessel position into a human readable place name
// for alert messages.
package locator

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/seawatch/internal/models"
)

// ErrNoPlace is returned when a provider knows no place near the position.
var ErrNoPlace = errors.New("no place found near position")

// Provider is an interface that defines a method for reverse geocoding a position.
// The Reverse method returns the name of the nearest known place.
type Provider interface {
	Reverse(ctx context.Context, position models.Coordinate) (string, error)
}
