package planner

import (
	"testing"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
)

func TestRoundRobin_RotatesAcrossRoutes(t *testing.T) {
	table := association.NewTable()
	for _, rk := range []string{"r1", "r2"} {
		for _, jobID := range []int{1, 2} {
			table.Append(association.Row{RouteKey: rk, JobID: jobID, ForecastID: 0, TransferTimeS: 3600, CarbonEmissionsG: 1})
		}
	}
	cap := capacity.New([]string{"r1", "r2"}, 1)
	rr := &RoundRobin{}
	sched := rr.Plan(table, []jobs.Job{
		{ID: 1, SizeBytes: 1, DeadlineHour: 0},
		{ID: 2, SizeBytes: 1, DeadlineHour: 0},
	}, cap, 1)

	if len(sched.Entries) != 2 {
		t.Fatalf("expected both jobs placed, got %+v / unscheduled %v", sched.Entries, sched.UnscheduledJobIDs)
	}
	got := map[int]string{}
	for _, e := range sched.Entries {
		got[e.JobID] = e.RouteKey
	}
	if got[1] != "r1" || got[2] != "r2" {
		t.Errorf("expected job 1 on r1 (cursor 0) and job 2 on r2 (cursor advanced), got %v", got)
	}
}

func TestRoundRobin_SkipsFullRouteAndTriesNext(t *testing.T) {
	table := association.NewTable()
	table.Append(association.Row{RouteKey: "r1", JobID: 1, ForecastID: 0, TransferTimeS: 3600, CarbonEmissionsG: 1})
	table.Append(association.Row{RouteKey: "r2", JobID: 1, ForecastID: 0, TransferTimeS: 3600, CarbonEmissionsG: 1})

	cap := capacity.New([]string{"r1", "r2"}, 1)
	if err := cap.Reserve("r1", 0, 3600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rr := &RoundRobin{}
	sched := rr.Plan(table, []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 0}}, cap, 1)

	if len(sched.Entries) != 1 || sched.Entries[0].RouteKey != "r2" {
		t.Errorf("expected fallback to r2, got %+v", sched.Entries)
	}
}
