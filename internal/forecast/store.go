// Package forecast holds the carbon-intensity time series keyed by zone and
// forecast hour.
package forecast

import (
	"fmt"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// Store is a time-indexed carbon-intensity series per zone, normalized to
// integer hour_offset within a caller-supplied forecast window (§4.1).
type Store struct {
	horizon int
	series  map[string][]float64 // zone_id -> ci_gco2_per_kwh indexed by hour_offset
}

// NewStore builds an empty Store for a forecast horizon of H hours.
func NewStore(horizon int) *Store {
	return &Store{
		horizon: horizon,
		series:  make(map[string][]float64),
	}
}

// Horizon returns H, the number of one-hour buckets in this store's window.
func (s *Store) Horizon() int {
	return s.horizon
}

// Set records the CI value for (zone, hourOffset), growing the zone's series
// lazily. Missing intermediate hours hold the "unset" sentinel rather than
// zero, so Get can still report ErrForecastMissing for genuinely absent hours.
func (s *Store) Set(zoneID string, hourOffset int, ci float64) {
	if hourOffset < 0 || hourOffset >= s.horizon {
		return
	}
	series, ok := s.series[zoneID]
	if !ok {
		series = make([]float64, s.horizon)
		for i := range series {
			series[i] = unset
		}
		s.series[zoneID] = series
	}
	series[hourOffset] = ci
}

// unset marks a (zone, hour) cell that has never been written, distinguishing
// it from a legitimately observed CI of exactly 0.
const unset = -1

// Get returns the carbon intensity for (zoneID, hourOffset), or
// ErrForecastMissing if the zone is unknown or the hour was never populated.
func (s *Store) Get(zoneID string, hourOffset int) (float64, error) {
	if zoneID == "" {
		return 0, fmt.Errorf("%w: empty zone id", planerr.ErrForecastMissing)
	}
	series, ok := s.series[zoneID]
	if !ok {
		return 0, fmt.Errorf("%w: zone %q", planerr.ErrForecastMissing, zoneID)
	}
	idx := hourOffset % s.horizon
	if idx < 0 {
		idx += s.horizon
	}
	ci := series[idx]
	if ci == unset {
		return 0, fmt.Errorf("%w: zone %q hour %d", planerr.ErrForecastMissing, zoneID, hourOffset)
	}
	return ci, nil
}

// HasZone reports whether any CI observation exists for zoneID.
func (s *Store) HasZone(zoneID string) bool {
	_, ok := s.series[zoneID]
	return ok
}
