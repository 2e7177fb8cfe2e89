package planner

import (
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// Mode selects which extreme of available emissions GreedyCarbon chases.
type Mode int

const (
	// ModeMin walks slots carbon-ascending: the "green" planner.
	ModeMin Mode = iota
	// ModeMax walks slots carbon-descending: the "worst" planner, used as a
	// baseline for comparison (§4.6.1).
	ModeMax
)

// GreedyCarbon greedily fills each job from the cleanest (or dirtiest)
// available slots across its candidate routes, grounded on
// scheduler_cli/algos/greedy_carbon_planner.py.
type GreedyCarbon struct {
	Mode Mode
}

func (g *GreedyCarbon) Name() string {
	if g.Mode == ModeMax {
		return "worst"
	}
	return "green"
}

func (g *GreedyCarbon) Plan(table *association.Table, jobList []jobs.Job, cap *capacity.Model, horizon int) schedule.Schedule {
	ordered := orderByDeadlineThenExtreme(table, jobList, g.Mode)

	var entries []schedule.Entry
	var unscheduled []int

	for _, job := range ordered {
		routes := sortedRouteKeysForJob(table, job.ID)
		placed := false
		for _, routeKey := range routes {
			rows := eligibleRows(table.ForJobRoute(job.ID, routeKey), job.DeadlineHour)
			sortByCarbon(rows, g.Mode)

			picks, ok := walkAndReserve(cap, rows, job)
			if !ok {
				continue
			}
			for _, p := range picks {
				entries = append(entries, entryFromRow(job, p.row, p.seconds))
			}
			placed = true
			break
		}
		if !placed {
			unscheduled = appendUnscheduled(unscheduled, job.ID)
		}
	}

	return schedule.Schedule{PlannerName: g.Name(), Entries: entries, UnscheduledJobIDs: unscheduled}
}

// orderByDeadlineThenExtreme sorts jobs by deadline ascending, tie-broken by
// the job's extreme available emissions across its rows (§4.6.1).
func orderByDeadlineThenExtreme(table *association.Table, jobList []jobs.Job, mode Mode) []jobs.Job {
	ordered := make([]jobs.Job, len(jobList))
	copy(ordered, jobList)
	extreme := make(map[int]float64, len(jobList))
	for _, job := range ordered {
		rows := table.ForJob(job.ID)
		extreme[job.ID] = extremeCarbon(rows, mode)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DeadlineHour != ordered[j].DeadlineHour {
			return ordered[i].DeadlineHour < ordered[j].DeadlineHour
		}
		if mode == ModeMax {
			return extreme[ordered[i].ID] > extreme[ordered[j].ID]
		}
		return extreme[ordered[i].ID] < extreme[ordered[j].ID]
	})
	return ordered
}

func extremeCarbon(rows []association.Row, mode Mode) float64 {
	if len(rows) == 0 {
		return 0
	}
	best := rows[0].CarbonEmissionsG
	for _, r := range rows[1:] {
		if mode == ModeMax {
			if r.CarbonEmissionsG > best {
				best = r.CarbonEmissionsG
			}
		} else if r.CarbonEmissionsG < best {
			best = r.CarbonEmissionsG
		}
	}
	return best
}

// eligibleRows filters rows to forecast_id <= deadlineHour (§4.6.1 step 1).
func eligibleRows(rows []association.Row, deadlineHour int) []association.Row {
	out := make([]association.Row, 0, len(rows))
	for _, r := range rows {
		if r.ForecastID <= deadlineHour {
			out = append(out, r)
		}
	}
	return out
}

// sortByCarbon orders rows by carbon_emissions (ascending for min, descending
// for max), with lower forecast_id winning ties (§4.6.1: "Tie-breaks: stable
// sort; when emissions equal, lower forecast_id wins").
func sortByCarbon(rows []association.Row, mode Mode) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CarbonEmissionsG != rows[j].CarbonEmissionsG {
			if mode == ModeMax {
				return rows[i].CarbonEmissionsG > rows[j].CarbonEmissionsG
			}
			return rows[i].CarbonEmissionsG < rows[j].CarbonEmissionsG
		}
		return rows[i].ForecastID < rows[j].ForecastID
	})
}

// walkAndReserve walks rows in their given order, picking up to
// transfer_time_s total seconds within each slot's remaining capacity. On
// success (accumulated seconds >= transfer_time_s) every pick is reserved via
// reserveAll; on failure to reach the target nothing is reserved, so the
// capacity model is left unchanged (§4.6.1 step 2).
func walkAndReserve(cap *capacity.Model, rows []association.Row, job jobs.Job) ([]slotPick, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	required := rows[0].TransferTimeS
	var picks []slotPick
	var accumulated float64

	for _, r := range rows {
		if accumulated >= required {
			break
		}
		want := required - accumulated
		if avail := cap.Available(r.RouteKey, r.ForecastID); avail < want {
			want = avail
		}
		if want <= 0 {
			continue
		}
		picks = append(picks, slotPick{row: r, seconds: want})
		accumulated += want
	}

	if accumulated < required {
		return nil, false
	}
	if err := reserveAll(cap, picks); err != nil {
		return nil, false
	}
	return picks, true
}
