package evaluator

import (
	"testing"

	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

func TestEvaluate_JobsCompletedAndDeadlineMet(t *testing.T) {
	jobList := []jobs.Job{{ID: 1, SizeBytes: 3600, DeadlineHour: 2}}
	sched := schedule.Schedule{
		PlannerName: "green",
		Entries: []schedule.Entry{
			{JobID: 1, ThroughputBps: 8, AllocatedSeconds: 3600, CarbonEmissionsG: 10, ForecastID: 1, DeadlineHour: 2},
		},
	}

	sum := Evaluate(sched, jobList)
	if sum.JobsCompleted != 1 {
		t.Errorf("expected 1 job completed, got %d", sum.JobsCompleted)
	}
	if sum.JobsDeadlineMet != 1 {
		t.Errorf("expected 1 job deadline met, got %d", sum.JobsDeadlineMet)
	}
	if sum.TotalEmissionsG != 10 {
		t.Errorf("expected total emissions 10, got %v", sum.TotalEmissionsG)
	}
	if sum.EmissionsPerByte != 10.0/3600 {
		t.Errorf("expected emissions per byte %v, got %v", 10.0/3600, sum.EmissionsPerByte)
	}
}

func TestEvaluate_PartialAllocation_NotCompleted(t *testing.T) {
	jobList := []jobs.Job{{ID: 1, SizeBytes: 3600, DeadlineHour: 2}}
	sched := schedule.Schedule{
		Entries: []schedule.Entry{
			{JobID: 1, ThroughputBps: 8, AllocatedSeconds: 1000, ForecastID: 0, DeadlineHour: 2},
		},
	}
	sum := Evaluate(sched, jobList)
	if sum.JobsCompleted != 0 {
		t.Errorf("expected partial allocation not counted as completed, got %d", sum.JobsCompleted)
	}
}

func TestCompare_RanksByEachMetric(t *testing.T) {
	jobList := []jobs.Job{{ID: 1, SizeBytes: 3600, DeadlineHour: 5}}
	clean := schedule.Schedule{
		PlannerName: "green",
		Entries:     []schedule.Entry{{JobID: 1, ThroughputBps: 8, AllocatedSeconds: 3600, CarbonEmissionsG: 1, ForecastID: 0, DeadlineHour: 5}},
	}
	dirty := schedule.Schedule{
		PlannerName: "worst",
		Entries:     []schedule.Entry{{JobID: 1, ThroughputBps: 8, AllocatedSeconds: 3600, CarbonEmissionsG: 50, ForecastID: 0, DeadlineHour: 5}},
	}

	cmp := Compare([]schedule.Schedule{dirty, clean}, jobList)
	if cmp.BestByTotalEmissions != "green" {
		t.Errorf("expected green to have lowest emissions, got %s", cmp.BestByTotalEmissions)
	}
	if len(cmp.Summaries) != 2 || cmp.Summaries[0].PlannerName != "green" {
		t.Errorf("expected summaries sorted by planner name, got %+v", cmp.Summaries)
	}
}

func TestCompare_EmptyInput(t *testing.T) {
	cmp := Compare(nil, nil)
	if len(cmp.Summaries) != 0 || cmp.BestByTotalEmissions != "" {
		t.Errorf("expected zero-value comparison for empty input, got %+v", cmp)
	}
}
