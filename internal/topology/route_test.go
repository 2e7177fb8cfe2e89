package topology

import "testing"

func threeHopRoute() Route {
	return Route{
		RouteKey:    NewRouteKey("src", "dst"),
		Source:      "src",
		Destination: "dst",
		Hops:        []Hop{{IP: "10.0.0.1"}, {IP: "10.0.0.2"}, {IP: "10.0.0.3"}},
	}
}

func TestNewRouteKey(t *testing.T) {
	if got := NewRouteKey("a", "b"); got != "a_b" {
		t.Errorf("NewRouteKey(a, b) = %q, want %q", got, "a_b")
	}
}

func TestValid_RequiresAtLeastTwoHops(t *testing.T) {
	if (Route{Hops: []Hop{{}}}).Valid() {
		t.Errorf("expected single-hop route to be invalid")
	}
	if !threeHopRoute().Valid() {
		t.Errorf("expected three-hop route to be valid")
	}
}

func TestHostName_EndpointsUseNodeNames(t *testing.T) {
	r := threeHopRoute()
	if got := r.HostName(0, nil); got != "src" {
		t.Errorf("HostName(0) = %q, want src", got)
	}
	if got := r.HostName(2, nil); got != "dst" {
		t.Errorf("HostName(2) = %q, want dst", got)
	}
	if got := r.HostName(1, nil); got != "router_src_dst_1" {
		t.Errorf("HostName(1) = %q, want router_src_dst_1", got)
	}
}

func TestLinkName(t *testing.T) {
	r := threeHopRoute()
	if got := r.LinkName(1); got != "link_src_dst_1" {
		t.Errorf("LinkName(1) = %q, want link_src_dst_1", got)
	}
}

func TestEligible_RequiresSourceAndDestinationTypes(t *testing.T) {
	r := threeHopRoute()
	nodesByName := map[string]Node{
		"src": {Name: "src", Type: NodeSource},
		"dst": {Name: "dst", Type: NodeDestination},
	}
	if !Eligible(r, nodesByName) {
		t.Errorf("expected route with properly typed endpoints to be eligible")
	}

	wrongTypes := map[string]Node{
		"src": {Name: "src", Type: NodeDTN},
		"dst": {Name: "dst", Type: NodeDestination},
	}
	if Eligible(r, wrongTypes) {
		t.Errorf("expected route with a non-source origin to be ineligible")
	}

	missingDestination := map[string]Node{"src": {Name: "src", Type: NodeSource}}
	if Eligible(r, missingDestination) {
		t.Errorf("expected route with an unknown destination node to be ineligible")
	}
}
