package association

import (
	"context"
	"testing"
	"time"

	"github.com/jgoldverg/green-transfer-scheduler/internal/forecast"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/simulator"
	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
	"github.com/jgoldverg/green-transfer-scheduler/internal/zone"
)

func TestBuild_ProducesOneRowPerEligibleRouteJobForecastHour(t *testing.T) {
	route := topology.Route{
		RouteKey: "src_dst", Source: "src", Destination: "dst",
		Hops: []topology.Hop{
			{IP: "src", Lat: 34, Lon: -118, HasGeo: true},
			{IP: "dst", Lat: 34, Lon: -118, HasGeo: true},
		},
	}
	nodesByName := map[string]topology.Node{
		"src": {Name: "src", Type: topology.NodeSource},
		"dst": {Name: "dst", Type: topology.NodeDestination},
	}
	job := jobs.Job{ID: 1, SizeBytes: 1_000_000_000, DeadlineHour: 3}

	store := forecast.NewStore(4)
	for h := 0; h < 4; h++ {
		store.Set("US-CA", h, 100)
	}

	resolver := &zone.Resolver{}

	adapter := simulator.NewStubAdapter(simulator.Output{
		RouteKey: "src_dst", JobID: 1, TransferDurationS: 3600,
		HostEnergyJ: map[string]float64{"src": 100, "dst": 50},
		LinkEnergyJ: map[string]float64{},
	})

	builder := &Builder{
		Routes:      []topology.Route{route},
		NodesByName: nodesByName,
		Jobs:        []jobs.Job{job},
		Forecast:    store,
		Zones:       resolver,
		Adapter:     adapter,
	}

	table, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(table.Rows); got != 4 {
		t.Fatalf("expected one row per forecast hour (4), got %d", got)
	}
	for _, r := range table.Rows {
		if r.RouteKey != "src_dst" || r.JobID != 1 {
			t.Errorf("unexpected row identity: %+v", r)
		}
		if r.TransferTimeS != 3600 {
			t.Errorf("expected transfer time carried from sim output, got %v", r.TransferTimeS)
		}
	}
}

func TestBuild_IneligibleRouteProducesNoRows(t *testing.T) {
	route := topology.Route{
		RouteKey: "src_dst", Source: "src", Destination: "dst",
		Hops: []topology.Hop{{IP: "src"}, {IP: "dst"}},
	}
	nodesByName := map[string]topology.Node{
		"src": {Name: "src", Type: topology.NodeDTN}, // not a source
		"dst": {Name: "dst", Type: topology.NodeDestination},
	}
	builder := &Builder{
		Routes:      []topology.Route{route},
		NodesByName: nodesByName,
		Jobs:        []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 1}},
		Forecast:    forecast.NewStore(1),
		Zones:       &zone.Resolver{},
		Adapter:     simulator.NewStubAdapter(),
	}
	table, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows for an ineligible route, got %d", len(table.Rows))
	}
}

func TestBuild_MissingSimulatorOutputOmitsRowsWithoutFailing(t *testing.T) {
	route := topology.Route{
		RouteKey: "src_dst", Source: "src", Destination: "dst",
		Hops: []topology.Hop{{IP: "src"}, {IP: "dst"}},
	}
	nodesByName := map[string]topology.Node{
		"src": {Name: "src", Type: topology.NodeSource},
		"dst": {Name: "dst", Type: topology.NodeDestination},
	}
	builder := &Builder{
		Routes:      []topology.Route{route},
		NodesByName: nodesByName,
		Jobs:        []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 1}},
		Forecast:    forecast.NewStore(1),
		Zones:       &zone.Resolver{},
		Adapter:     simulator.NewStubAdapter(), // no canned output for this (route, job)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	table, err := builder.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected zero rows when the simulator produces no output, got %d", len(table.Rows))
	}
}
