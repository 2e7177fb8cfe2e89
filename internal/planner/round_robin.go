package planner

import (
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// RoundRobin rotates through the full route_key set once per job, walking
// each attempted route's slots in forecast_id order, grounded on
// scheduler_cli/algos/round_robin.py.
type RoundRobin struct{}

func (r *RoundRobin) Name() string { return "rr" }

func (r *RoundRobin) Plan(table *association.Table, jobList []jobs.Job, cap *capacity.Model, horizon int) schedule.Schedule {
	routeKeys := allRouteKeys(table)
	ordered := make([]jobs.Job, len(jobList))
	copy(ordered, jobList)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].DeadlineHour < ordered[j].DeadlineHour })

	var entries []schedule.Entry
	var unscheduled []int
	cursor := 0

	for _, job := range ordered {
		placed := false
		if len(routeKeys) > 0 {
			for attempt := 0; attempt < len(routeKeys); attempt++ {
				routeKey := routeKeys[(cursor+attempt)%len(routeKeys)]
				rows := eligibleRows(table.ForJobRoute(job.ID, routeKey), job.DeadlineHour)
				sortByForecastID(rows)

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
		}
		if !placed {
			unscheduled = appendUnscheduled(unscheduled, job.ID)
		}
		if len(routeKeys) > 0 {
			cursor = (cursor + 1) % len(routeKeys)
		}
	}

	return schedule.Schedule{PlannerName: r.Name(), Entries: entries, UnscheduledJobIDs: unscheduled}
}

// allRouteKeys returns every distinct route_key in the table, sorted for a
// deterministic rotation order.
func allRouteKeys(table *association.Table) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range table.Rows {
		if !seen[row.RouteKey] {
			seen[row.RouteKey] = true
			keys = append(keys, row.RouteKey)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortByForecastID(rows []association.Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ForecastID < rows[j].ForecastID })
}
