package zone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
)

func squareFeature(name string, minLon, minLat, maxLon, maxLat float64) zoneFeature {
	ring := orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}
	return zoneFeature{name: name, geometry: orb.Polygon{ring}}
}

func TestResolve_ReturnsContainingZone(t *testing.T) {
	r := &Resolver{features: []zoneFeature{
		squareFeature("US-CA", -125, 32, -114, 42),
		squareFeature("US-NY", -80, 40, -71, 45),
	}}
	if got := r.Resolve(-118, 34); got != "US-CA" {
		t.Errorf("Resolve(-118, 34) = %q, want US-CA", got)
	}
}

func TestResolve_NoMatchReturnsNullZone(t *testing.T) {
	r := &Resolver{features: []zoneFeature{squareFeature("US-CA", -125, 32, -114, 42)}}
	if got := r.Resolve(0, 0); got != "" {
		t.Errorf("Resolve(0, 0) = %q, want empty null zone", got)
	}
}

func TestResolve_FirstMatchingFeatureWins(t *testing.T) {
	r := &Resolver{features: []zoneFeature{
		squareFeature("first", -10, -10, 10, 10),
		squareFeature("second", -10, -10, 10, 10),
	}}
	if got := r.Resolve(0, 0); got != "first" {
		t.Errorf("expected first declared feature to win ties, got %q", got)
	}
}

func TestLoad_ParsesGeoJSONFeatureCollection(t *testing.T) {
	content := `{"type":"FeatureCollection","features":[{"type":"Feature",` +
		`"properties":{"zoneName":"US-CA"},"geometry":{"type":"Polygon",` +
		`"coordinates":[[[-125,32],[-114,32],[-114,42],[-125,42],[-125,32]]]}}]}`
	path := filepath.Join(t.TempDir(), "world.geojson")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := r.Resolve(-118, 34); got != "US-CA" {
		t.Errorf("Resolve after Load = %q, want US-CA", got)
	}
}

func TestResolveRoute_FallsBackToNearestGeoHop(t *testing.T) {
	r := &Resolver{features: []zoneFeature{squareFeature("US-CA", -125, 32, -114, 42)}}
	hops := []topology.Hop{
		{IP: "src", Lat: 34, Lon: -118, HasGeo: true},
		{IP: "router", HasGeo: false},
		{IP: "dst", Lat: 34, Lon: -118, HasGeo: true},
	}
	zones := r.ResolveRoute(hops)
	if len(zones) != 3 {
		t.Fatalf("expected one zone per hop, got %d", len(zones))
	}
	if zones[0] != "US-CA" || zones[2] != "US-CA" {
		t.Errorf("expected geo-bearing hops resolved directly, got %+v", zones)
	}
	if zones[1] != "US-CA" {
		t.Errorf("expected the geo-less middle hop to fall back to a neighboring hop's coordinates, got %q", zones[1])
	}
}
