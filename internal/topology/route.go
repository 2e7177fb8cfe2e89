package topology

import "fmt"

// Hop is one traceroute hop: an IP with optional geocoordinates and the
// round-trip time observed at that hop.
type Hop struct {
	IP        string
	Lat       float64
	Lon       float64
	HasGeo    bool
	TTL       int
	RTTSeconds float64
}

// Route is an ordered sequence of hops between a source node and a
// destination node, identified by RouteKey = "{source}_{destination}".
type Route struct {
	RouteKey    string
	Source      string
	Destination string
	Hops        []Hop
}

// NewRouteKey builds the canonical route_key for a (source, destination) pair.
func NewRouteKey(source, destination string) string {
	return fmt.Sprintf("%s_%s", source, destination)
}

// Valid reports whether the route has at least two hops (source +
// destination), per the Route identity invariant in §3.
func (r Route) Valid() bool {
	return len(r.Hops) >= 2
}

// HostName returns the naming-convention host identifier for hop index i
// within this route: endpoints use the node's own name, intermediates use
// "router_{route_key}_{i}" (§4.4).
func (r Route) HostName(i int, nodesByName map[string]Node) string {
	if i == 0 {
		return r.Source
	}
	if i == len(r.Hops)-1 {
		return r.Destination
	}
	return fmt.Sprintf("router_%s_%d", r.RouteKey, i)
}

// LinkName returns the naming-convention link identifier feeding hop index i
// (i must be >= 1): "link_{route_key}_{i}" for every link, endpoints
// included — the link INTO hop i, from hop i-1.
func (r Route) LinkName(i int) string {
	return fmt.Sprintf("link_%s_%d", r.RouteKey, i)
}

// Eligible reports whether this route is eligible for association-building:
// the source endpoint must be declared type=source and the destination
// endpoint type=destination (§4.4, §9 Open Question resolution).
func Eligible(route Route, nodesByName map[string]Node) bool {
	src, ok := nodesByName[route.Source]
	if !ok || src.Type != NodeSource {
		return false
	}
	dst, ok := nodesByName[route.Destination]
	if !ok || dst.Type != NodeDestination {
		return false
	}
	return route.Valid()
}
