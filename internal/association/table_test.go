package association

import "testing"

func TestAppend_BuildsAllIndexes(t *testing.T) {
	table := NewTable()
	table.Append(Row{RouteKey: "a_b", JobID: 1, ForecastID: 0})
	table.Append(Row{RouteKey: "a_b", JobID: 1, ForecastID: 1})
	table.Append(Row{RouteKey: "c_d", JobID: 1, ForecastID: 0})
	table.Append(Row{RouteKey: "a_b", JobID: 2, ForecastID: 0})

	if got := len(table.ForJobRoute(1, "a_b")); got != 2 {
		t.Errorf("ForJobRoute(1, a_b) returned %d rows, want 2", got)
	}
	if got := len(table.ForRouteForecast("a_b", 0)); got != 2 {
		t.Errorf("ForRouteForecast(a_b, 0) returned %d rows, want 2", got)
	}
	if got := len(table.ForJob(1)); got != 3 {
		t.Errorf("ForJob(1) returned %d rows, want 3", got)
	}
}

func TestRouteKeysForJob_DistinctInFirstSeenOrder(t *testing.T) {
	table := NewTable()
	table.Append(Row{RouteKey: "b", JobID: 1, ForecastID: 0})
	table.Append(Row{RouteKey: "a", JobID: 1, ForecastID: 0})
	table.Append(Row{RouteKey: "b", JobID: 1, ForecastID: 1})

	keys := table.RouteKeysForJob(1)
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("RouteKeysForJob(1) = %v, want [b a]", keys)
	}
}

func TestForJobRoute_UnknownPairReturnsNil(t *testing.T) {
	table := NewTable()
	if got := table.ForJobRoute(99, "nope"); got != nil {
		t.Errorf("expected nil for an unknown (job, route) pair, got %v", got)
	}
}
