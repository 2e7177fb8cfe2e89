// Package planner implements the five required scheduling algorithms over an
// associations Table and a shared CapacityModel (§4.6).
package planner

import (
	"fmt"
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// Planner exposes the single operation every scheduling algorithm supports:
// produce a Schedule from the associations table, the job set, and a fresh
// CapacityModel (§9: "implement as an interface with one operation plan()").
type Planner interface {
	Name() string
	Plan(table *association.Table, jobList []jobs.Job, cap *capacity.Model, horizon int) schedule.Schedule
}

// New builds a Planner by its enum name (§6 CLI shape). "green" and "worst"
// select GreedyCarbon's ModeMin and ModeMax respectively.
func New(name string) (Planner, error) {
	switch name {
	case "green":
		return &GreedyCarbon{Mode: ModeMin}, nil
	case "worst":
		return &GreedyCarbon{Mode: ModeMax}, nil
	case "rr":
		return &RoundRobin{}, nil
	case "sjf":
		return &ShortestJobFirst{}, nil
	case "edf":
		return &EarliestDeadlineFirst{}, nil
	case "milp_norm":
		return &MILPGreen{Formulation: FormulationNormalized}, nil
	case "milp_binary":
		return &MILPGreen{Formulation: FormulationBinary}, nil
	default:
		return nil, fmt.Errorf("planner: unknown planner name %q", name)
	}
}

// sortedRouteKeysForJob returns the distinct route keys serving jobID, sorted
// ascending for deterministic iteration (§5: "planners must sort their input
// deterministically").
func sortedRouteKeysForJob(table *association.Table, jobID int) []string {
	keys := table.RouteKeysForJob(jobID)
	sort.Strings(keys)
	return keys
}

// slotPick is one (forecast_id, seconds) allocation chosen for a job on a
// single route during a placement attempt.
type slotPick struct {
	row     association.Row
	seconds float64
}

// reserveAll reserves every pick against cap, rolling back everything already
// reserved if any single reservation fails. Per §4.6.5's shared state machine
// ("A failed route attempt must leave CapacityModel unchanged").
func reserveAll(cap *capacity.Model, picks []slotPick) error {
	done := make([]slotPick, 0, len(picks))
	for _, p := range picks {
		if err := cap.Reserve(p.row.RouteKey, p.row.ForecastID, p.seconds); err != nil {
			for _, d := range done {
				cap.Release(d.row.RouteKey, d.row.ForecastID, d.seconds)
			}
			return err
		}
		done = append(done, p)
	}
	return nil
}

// findConsecutiveSlots looks for the earliest run of slotsNeeded consecutive
// forecast_ids (by forecast_id order) on a single route whose last element is
// <= deadlineHour and whose remaining capacity can each accommodate
// perSlotShare seconds (§4.6.3). rows must all share the same route_key and
// are expected sorted by ForecastID ascending; duplicates per forecast_id
// are not expected (one row per (route,job,forecast)).
func findConsecutiveSlots(cap *capacity.Model, rows []association.Row, deadlineHour int, slotsNeeded int, perSlotShare float64) ([]association.Row, bool) {
	if slotsNeeded <= 0 || len(rows) < slotsNeeded {
		return nil, false
	}
	for start := 0; start+slotsNeeded <= len(rows); start++ {
		run := rows[start : start+slotsNeeded]
		if !consecutiveByForecastID(run) {
			continue
		}
		if run[len(run)-1].ForecastID > deadlineHour {
			continue
		}
		if !allFit(cap, run, perSlotShare) {
			continue
		}
		return run, true
	}
	return nil, false
}

func consecutiveByForecastID(run []association.Row) bool {
	for i := 1; i < len(run); i++ {
		if run[i].ForecastID != run[i-1].ForecastID+1 {
			return false
		}
	}
	return true
}

func allFit(cap *capacity.Model, run []association.Row, perSlotShare float64) bool {
	for _, r := range run {
		if cap.Available(r.RouteKey, r.ForecastID) < perSlotShare {
			return false
		}
	}
	return true
}

// tryPlaceOnRoute reserves an equal per-slot share of requiredSeconds across
// run (a consecutive slot sequence already validated by findConsecutiveSlots)
// and returns the resulting ScheduleEntries. Used by ShortestJobFirst and
// EarliestDeadlineFirst, whose shared mechanism is consecutive-slot
// first-fit with equal shares (§4.6.3, §4.6.4).
func tryPlaceOnRoute(cap *capacity.Model, job jobs.Job, run []association.Row, requiredSeconds float64) ([]schedule.Entry, error) {
	perSlotShare := requiredSeconds / float64(len(run))
	picks := make([]slotPick, len(run))
	for i, r := range run {
		picks[i] = slotPick{row: r, seconds: perSlotShare}
	}
	if err := reserveAll(cap, picks); err != nil {
		return nil, err
	}
	entries := make([]schedule.Entry, len(run))
	for i, r := range run {
		entries[i] = entryFromRow(job, r, perSlotShare)
	}
	return entries, nil
}

func entryFromRow(job jobs.Job, r association.Row, allocatedSeconds float64) schedule.Entry {
	return schedule.Entry{
		JobID:            job.ID,
		RouteKey:         r.RouteKey,
		SourceNode:       r.SourceNode,
		DestinationNode:  r.DestinationNode,
		ForecastID:       r.ForecastID,
		AllocatedSeconds: allocatedSeconds,
		CarbonEmissionsG: r.CarbonEmissionsG * (allocatedSeconds / r.TransferTimeS),
		ThroughputBps:    r.ThroughputBps,
		TransferTimeS:    r.TransferTimeS,
		DeadlineHour:     job.DeadlineHour,
	}
}

// appendUnscheduled tracks a job that no route could place, in encounter
// order (§4.6: "Failures are reported via unscheduled_job_ids").
func appendUnscheduled(ids []int, jobID int) []int {
	return append(ids, jobID)
}
