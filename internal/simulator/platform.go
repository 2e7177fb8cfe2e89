package simulator

import (
	"fmt"

	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
)

// Host classes recognized by the platform description (§4.3).
const (
	HostClassEndpoint = "endpoint" // source or destination, uses the node's declared power profile
	HostClassRouter   = "router"   // intermediate hop, uses the default router profile
)

// Link classes recognized by the platform description (§4.3).
const (
	LinkClassBackbone = "backbone" // both endpoints are intermediate routers
	LinkClassStandard = "standard" // at least one endpoint is the transfer's source or destination
)

// Default wattage and bandwidth profiles for router-class hosts and
// backbone/standard-class links, grounded on SimGridSimulator's hard-coded
// defaults (50:275:500 W for routers, 80-130W/10W-off for standard links).
// Intermediate links are always backbone-classed and use
// BackboneLinkBandwidth (40Gbps); endpoint links use the endpoint's NIC speed.
var (
	RouterPower = topology.PowerProfile{MinWatts: 50, MaxWatts: 500}

	StandardLinkWattageLow  = 80.0
	StandardLinkWattageHigh = 130.0
	StandardLinkWattageOff  = 10.0
	StandardLinkBandwidth   = int64(10_000_000_000) // 10Gbps

	BackboneLinkWattageLow  = 150.0
	BackboneLinkWattageHigh = 250.0
	BackboneLinkWattageOff  = 15.0
	BackboneLinkBandwidth   = int64(40_000_000_000) // 40Gbps
)

// PlatformHost is one host entry in the platform description: a node or
// router along the route with its power/compute profile.
type PlatformHost struct {
	Name     string
	Class    string // HostClassEndpoint | HostClassRouter
	CPUCores int
	GFlops   float64
	Power    topology.PowerProfile
}

// PlatformLink is one link entry connecting two consecutive hosts.
type PlatformLink struct {
	Name          string
	FromHost      string
	ToHost        string
	Class         string // LinkClassBackbone | LinkClassStandard
	BandwidthBps  int64
	LatencySec    float64
	WattageLow    float64
	WattageHigh   float64
	WattageOff    float64
}

// PlatformDescription is the artifact handed to the external simulator: the
// hosts and links derived from one route, with per-state wattage (§4.3).
type PlatformDescription struct {
	RouteKey    string
	Destination string
	Hosts       []PlatformHost
	Links       []PlatformLink
}

// BuildPlatform derives a PlatformDescription from a route and its resolved
// nodes, grounded on SimGridSimulator.create_xml_for_traceroute: the first
// hop is the source endpoint, the last is the destination endpoint, and
// everything between is a router with the default profile. Endpoint links
// (first and last) use the endpoint's declared NIC speed; intermediate links
// use the backbone/standard class default.
func BuildPlatform(route topology.Route, nodesByName map[string]topology.Node) (PlatformDescription, error) {
	n := len(route.Hops)
	if n < 2 {
		return PlatformDescription{}, fmt.Errorf("route %s: need at least 2 hops, got %d", route.RouteKey, n)
	}

	pd := PlatformDescription{RouteKey: route.RouteKey, Destination: route.Destination}

	for i := range route.Hops {
		host := route.HostName(i, nodesByName)
		if i == 0 || i == n-1 {
			node, ok := nodesByName[host]
			if !ok {
				return PlatformDescription{}, fmt.Errorf("route %s: endpoint node %q not found", route.RouteKey, host)
			}
			pd.Hosts = append(pd.Hosts, PlatformHost{
				Name:     host,
				Class:    HostClassEndpoint,
				CPUCores: node.CPUCores,
				GFlops:   node.GFlops,
				Power:    node.Power,
			})
		} else {
			pd.Hosts = append(pd.Hosts, PlatformHost{
				Name:   host,
				Class:  HostClassRouter,
				Power:  RouterPower,
			})
		}
	}

	for i := 1; i < n; i++ {
		fromHost := route.HostName(i-1, nodesByName)
		toHost := route.HostName(i, nodesByName)
		linkName := route.LinkName(i)

		isEndpointLink := i == 1 || i == n-1
		var bandwidth int64
		var class string
		var lo, hi, off float64
		if isEndpointLink {
			class = LinkClassStandard
			lo, hi, off = StandardLinkWattageLow, StandardLinkWattageHigh, StandardLinkWattageOff
			var endpointHost string
			if i == 1 {
				endpointHost = route.Source
			} else {
				endpointHost = route.Destination
			}
			node, ok := nodesByName[endpointHost]
			if !ok {
				return PlatformDescription{}, fmt.Errorf("route %s: endpoint node %q not found", route.RouteKey, endpointHost)
			}
			bandwidth = node.NICSpeedBps
		} else {
			class = LinkClassBackbone
			lo, hi, off = BackboneLinkWattageLow, BackboneLinkWattageHigh, BackboneLinkWattageOff
			bandwidth = BackboneLinkBandwidth
		}

		pd.Links = append(pd.Links, PlatformLink{
			Name:         linkName,
			FromHost:     fromHost,
			ToHost:       toHost,
			Class:        class,
			BandwidthBps: bandwidth,
			LatencySec:   route.Hops[i].RTTSeconds,
			WattageLow:   lo,
			WattageHigh:  hi,
			WattageOff:   off,
		})
	}

	return pd, nil
}
