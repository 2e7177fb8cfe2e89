// Package zone maps traceroute hop coordinates to electricity-zone
// identifiers via point-in-polygon lookup against a world GeoJSON file.
package zone

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// zoneFeature pairs a parsed geometry with its zoneName property, in the
// order the GeoJSON FeatureCollection declared them — resolve() picks the
// first match, so this order is the tie-break (§4.2).
type zoneFeature struct {
	name     string
	geometry orb.Geometry
}

// Resolver answers (lon, lat) -> zone_id via point-in-polygon against a set
// of world zone features, loaded once from a GeoJSON file.
type Resolver struct {
	features []zoneFeature
}

// Load reads world.geojson (standard GeoJSON features with a "zoneName"
// property) and builds a Resolver.
func Load(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading zone geojson %q: %v", planerr.ErrInputMalformed, path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding zone geojson %q: %v", planerr.ErrInputMalformed, path, err)
	}

	features := make([]zoneFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		name, _ := f.Properties["zoneName"].(string)
		if name == "" {
			continue
		}
		features = append(features, zoneFeature{name: name, geometry: f.Geometry})
	}
	return &Resolver{features: features}, nil
}

// Resolve returns the zone_id containing (lon, lat), or "" (null zone) if no
// feature matches — AssociationBuilder treats that as a zero-CI contribution
// with a logged warning, never a fatal error (§4.2).
func (r *Resolver) Resolve(lon, lat float64) string {
	pt := orb.Point{lon, lat}
	for _, f := range r.features {
		if containsPoint(f.geometry, pt) {
			return f.name
		}
	}
	logrus.WithFields(logrus.Fields{"lon": lon, "lat": lat}).Warn("zone: no polygon match, using null zone")
	return ""
}

// containsPoint tests point-in-polygon for a GeoJSON geometry that may be a
// Polygon or a MultiPolygon (either ring can match).
func containsPoint(g orb.Geometry, pt orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		for _, poly := range geom {
			if planar.PolygonContains(poly, pt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
