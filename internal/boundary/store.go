package boundary

import (
	"errors"
	"sync/atomic"
)

// Store holds the process-wide geofence. Readers always see a complete configuration;
// a reload swaps the whole value.
type Store struct {
	current atomic.Pointer[GeofenceConfig]
}

// NewStore returns a store serving cfg.
func NewStore(cfg *GeofenceConfig) *Store {
	s := &Store{}
	s.current.Store(cfg)

	return s
}

// Load returns the geofence currently in use.
func (s *Store) Load() *GeofenceConfig {
	return s.current.Load()
}

// Replace atomically installs cfg and returns the previous configuration.
func (s *Store) Replace(cfg *GeofenceConfig) (*GeofenceConfig, error) {
	if cfg == nil {
		return nil, errors.New("cannot replace geofence with nil configuration")
	}

	return s.current.Swap(cfg), nil
}
