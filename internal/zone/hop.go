package zone

import "github.com/jgoldverg/green-transfer-scheduler/internal/topology"

// ResolveRoute resolves a zone id for every hop in route.Hops, applying the
// backward/forward nearest-coordinate fallback (§4.2) when a hop itself lacks
// geo data. Deterministic given a fixed hop order: the scan direction and
// distance are purely index-based, never timing- or map-iteration-based.
func (r *Resolver) ResolveRoute(hops []topology.Hop) []string {
	zones := make([]string, len(hops))
	for i, h := range hops {
		lat, lon, ok := coordinatesFor(hops, i)
		if !ok {
			zones[i] = ""
			continue
		}
		_ = h
		zones[i] = r.Resolve(lon, lat)
	}
	return zones
}

// coordinatesFor returns the coordinates to use for hop i: its own if
// present, else the nearest preceding hop's, else the nearest following
// hop's. Reports ok=false if no hop in the route carries geo data.
func coordinatesFor(hops []topology.Hop, i int) (lat, lon float64, ok bool) {
	if hops[i].HasGeo {
		return hops[i].Lat, hops[i].Lon, true
	}
	for j := i - 1; j >= 0; j-- {
		if hops[j].HasGeo {
			return hops[j].Lat, hops[j].Lon, true
		}
	}
	for j := i + 1; j < len(hops); j++ {
		if hops[j].HasGeo {
			return hops[j].Lat, hops[j].Lon, true
		}
	}
	return 0, 0, false
}
