package planner

import (
	"math"
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// EarliestDeadlineFirst uses the same consecutive-slot first-fit mechanism as
// ShortestJobFirst, but orders jobs by deadline and tries routes in the
// associations table's natural order rather than by transfer time (§4.6.4),
// grounded on scheduler_cli/algos/earliest_deadline_first.py.
type EarliestDeadlineFirst struct{}

func (e *EarliestDeadlineFirst) Name() string { return "edf" }

func (e *EarliestDeadlineFirst) Plan(table *association.Table, jobList []jobs.Job, cap *capacity.Model, horizon int) schedule.Schedule {
	ordered := make([]jobs.Job, len(jobList))
	copy(ordered, jobList)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].DeadlineHour < ordered[j].DeadlineHour })

	var entries []schedule.Entry
	var unscheduled []int

	for _, job := range ordered {
		routeKeys := table.RouteKeysForJob(job.ID)
		placed := false
		for _, routeKey := range routeKeys {
			rows := sortedByForecastID(table.ForJobRoute(job.ID, routeKey))
			if len(rows) == 0 {
				continue
			}
			requiredSeconds := rows[0].TransferTimeS
			slotsNeeded := int(math.Ceil(requiredSeconds / capacity.SlotSeconds))
			run, ok := findConsecutiveSlots(cap, rows, job.DeadlineHour, slotsNeeded, requiredSeconds/float64(slotsNeeded))
			if !ok {
				continue
			}
			placedEntries, err := tryPlaceOnRoute(cap, job, run, requiredSeconds)
			if err != nil {
				continue
			}
			entries = append(entries, placedEntries...)
			placed = true
			break
		}
		if !placed {
			unscheduled = appendUnscheduled(unscheduled, job.ID)
		}
	}

	return schedule.Schedule{PlannerName: e.Name(), Entries: entries, UnscheduledJobIDs: unscheduled}
}
