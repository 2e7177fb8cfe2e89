package planner

import (
	"math"
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// ShortestJobFirst orders jobs by their best-case transfer time and places
// each on the earliest route/slot-run that fits, grounded on
// scheduler_cli/algos/shortest_job_first.py.
type ShortestJobFirst struct{}

func (s *ShortestJobFirst) Name() string { return "sjf" }

func (s *ShortestJobFirst) Plan(table *association.Table, jobList []jobs.Job, cap *capacity.Model, horizon int) schedule.Schedule {
	ordered := make([]jobs.Job, len(jobList))
	copy(ordered, jobList)
	minTime := make(map[int]float64, len(jobList))
	for _, job := range ordered {
		minTime[job.ID] = minTransferTime(table.ForJob(job.ID))
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if minTime[ordered[i].ID] != minTime[ordered[j].ID] {
			return minTime[ordered[i].ID] < minTime[ordered[j].ID]
		}
		return ordered[i].DeadlineHour < ordered[j].DeadlineHour
	})

	var entries []schedule.Entry
	var unscheduled []int

	for _, job := range ordered {
		routeKeys := routesByTransferTimeAscending(table, job.ID)
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

	return schedule.Schedule{PlannerName: s.Name(), Entries: entries, UnscheduledJobIDs: unscheduled}
}

func minTransferTime(rows []association.Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	min := rows[0].TransferTimeS
	for _, r := range rows[1:] {
		if r.TransferTimeS < min {
			min = r.TransferTimeS
		}
	}
	return min
}

// routesByTransferTimeAscending ranks a job's candidate routes by
// transfer_time_s ascending (§4.6.3 step 1).
func routesByTransferTimeAscending(table *association.Table, jobID int) []string {
	keys := sortedRouteKeysForJob(table, jobID)
	timeFor := make(map[string]float64, len(keys))
	for _, rk := range keys {
		rows := table.ForJobRoute(jobID, rk)
		if len(rows) > 0 {
			timeFor[rk] = rows[0].TransferTimeS
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return timeFor[keys[i]] < timeFor[keys[j]] })
	return keys
}

func sortedByForecastID(rows []association.Row) []association.Row {
	out := make([]association.Row, len(rows))
	copy(out, rows)
	sortByForecastID(out)
	return out
}
