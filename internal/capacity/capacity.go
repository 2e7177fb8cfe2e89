// Package capacity tracks per-(route, forecast hour) remaining transfer
// capacity for a single planner run.
package capacity

import (
	"fmt"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// SlotSeconds is the fixed slot length S in the data model (§3, §4.5).
const SlotSeconds = 3600.0

type key struct {
	routeKey   string
	forecastID int
}

// Model is a two-level map from (route_key, forecast_id) to remaining
// seconds, instantiated fresh at the start of each Planner.plan() call.
// Not safe for concurrent use — planners are single-threaded (§5).
type Model struct {
	remaining map[key]float64
}

// New builds a Model with every (routeKey, forecastID) pair in
// routeKeys × [0, horizon) initialized to SlotSeconds.
func New(routeKeys []string, horizon int) *Model {
	m := &Model{remaining: make(map[key]float64, len(routeKeys)*horizon)}
	for _, rk := range routeKeys {
		for h := 0; h < horizon; h++ {
			m.remaining[key{rk, h}] = SlotSeconds
		}
	}
	return m
}

// Available returns the remaining seconds for (routeKey, forecastID). A slot
// that was never initialized (route/hour combination outside the model's
// construction) reports 0.
func (m *Model) Available(routeKey string, forecastID int) float64 {
	return m.remaining[key{routeKey, forecastID}]
}

// Reserve decrements the remaining capacity for (routeKey, forecastID) by
// seconds. Fails with ErrInsufficientCapacity (and leaves the model
// unchanged) if seconds exceeds what remains.
func (m *Model) Reserve(routeKey string, forecastID int, seconds float64) error {
	k := key{routeKey, forecastID}
	have := m.remaining[k]
	if seconds > have {
		return fmt.Errorf("%w: route=%s forecast=%d requested=%.3f available=%.3f",
			planerr.ErrInsufficientCapacity, routeKey, forecastID, seconds, have)
	}
	m.remaining[k] = have - seconds
	return nil
}

// Release restores seconds of capacity to (routeKey, forecastID), used to
// roll back a failed multi-slot allocation attempt. Clamped to SlotSeconds so
// a caller can never over-release.
func (m *Model) Release(routeKey string, forecastID int, seconds float64) {
	k := key{routeKey, forecastID}
	v := m.remaining[k] + seconds
	if v > SlotSeconds {
		v = SlotSeconds
	}
	m.remaining[k] = v
}
