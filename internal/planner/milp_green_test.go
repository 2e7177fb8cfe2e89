package planner

import (
	"testing"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
)

func TestMILPGreen_Normalized_CompletesFeasibleJob(t *testing.T) {
	table := association.NewTable()
	table.Append(association.Row{RouteKey: "r1", JobID: 1, ForecastID: 0, TransferTimeS: 3600, CarbonEmissionsG: 5})
	table.Append(association.Row{RouteKey: "r1", JobID: 1, ForecastID: 1, TransferTimeS: 3600, CarbonEmissionsG: 1})

	cap := capacity.New([]string{"r1"}, 2)
	m := &MILPGreen{Formulation: FormulationNormalized}
	sched := m.Plan(table, []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 1}}, cap, 2)

	if len(sched.Entries) == 0 {
		t.Fatalf("expected at least one allocation, got none (unscheduled=%v)", sched.UnscheduledJobIDs)
	}
	var total float64
	for _, e := range sched.Entries {
		total += e.AllocatedSeconds
	}
	if total < 3600-1e-3 {
		t.Errorf("expected allocated seconds to cover the job's 3600s requirement, got %v", total)
	}
}

func TestMILPGreen_Normalized_NoCandidates_AllUnscheduled(t *testing.T) {
	table := association.NewTable()
	cap := capacity.New(nil, 1)
	m := &MILPGreen{Formulation: FormulationNormalized}
	sched := m.Plan(table, []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 0}}, cap, 1)

	if len(sched.Entries) != 0 {
		t.Errorf("expected no entries, got %+v", sched.Entries)
	}
	if len(sched.UnscheduledJobIDs) != 1 {
		t.Errorf("expected job unscheduled, got %v", sched.UnscheduledJobIDs)
	}
}

func TestMILPGreen_Binary_PrefersFullCompletionOverPartial(t *testing.T) {
	table := association.NewTable()
	table.Append(association.Row{RouteKey: "r1", JobID: 1, ForecastID: 0, TransferTimeS: 3600, CarbonEmissionsG: 1})

	cap := capacity.New([]string{"r1"}, 1)
	m := &MILPGreen{Formulation: FormulationBinary}
	sched := m.Plan(table, []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 0}}, cap, 1)

	if len(sched.Entries) != 1 {
		t.Fatalf("expected the single feasible job fully placed, got %+v (unscheduled=%v)", sched.Entries, sched.UnscheduledJobIDs)
	}
	if sched.Entries[0].AllocatedSeconds != 3600 {
		t.Errorf("expected full 3600s allocation, got %v", sched.Entries[0].AllocatedSeconds)
	}
}

func TestMILPGreen_Binary_InfeasibleJob_Unscheduled(t *testing.T) {
	table := association.NewTable()
	// Job needs 2 slots but only 1 exists within its deadline.
	table.Append(association.Row{RouteKey: "r1", JobID: 1, ForecastID: 0, TransferTimeS: 7200, CarbonEmissionsG: 1})

	cap := capacity.New([]string{"r1"}, 1)
	m := &MILPGreen{Formulation: FormulationBinary, TimeLimitSeconds: 5}
	sched := m.Plan(table, []jobs.Job{{ID: 1, SizeBytes: 1, DeadlineHour: 0}}, cap, 1)

	if len(sched.Entries) != 0 {
		t.Errorf("expected no placement for an infeasible job, got %+v", sched.Entries)
	}
	if len(sched.UnscheduledJobIDs) != 1 {
		t.Errorf("expected job unscheduled, got %v", sched.UnscheduledJobIDs)
	}
}

func TestMILPGreen_Name(t *testing.T) {
	if (&MILPGreen{Formulation: FormulationNormalized}).Name() != "milp_norm" {
		t.Errorf("expected milp_norm")
	}
	if (&MILPGreen{Formulation: FormulationBinary}).Name() != "milp_binary" {
		t.Errorf("expected milp_binary")
	}
}
