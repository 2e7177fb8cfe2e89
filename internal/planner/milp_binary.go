package planner

import (
	"sort"
	"time"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// planBinary implements the two-stage strategy the spec allows as an
// alternative to weighted lexicographic optimization (§4.6.5: "or solve
// two-stage: maximize Σ y_j, then fix that bound and minimize carbon"):
// first branch-and-bound for the largest feasible set of fully-completed
// jobs, then solve a carbon-minimizing LP restricted to that set.
func (m *MILPGreen) planBinary(table *association.Table, jobList []jobs.Job, capModel *capacity.Model, horizon int) schedule.Schedule {
	cands := collectCandidates(table, jobList)
	if len(cands) == 0 {
		return allUnscheduled(m.Name(), jobList)
	}

	required := make(map[int]float64, len(jobList))
	candsByJob := make(map[int][]candidate)
	for _, job := range jobList {
		required[job.ID] = requiredSecondsFor(job, cands)
	}
	for _, c := range cands {
		candsByJob[c.job.ID] = append(candsByJob[c.job.ID], c)
	}

	ordered := make([]jobs.Job, 0, len(jobList))
	for _, job := range jobList {
		if len(candsByJob[job.ID]) > 0 {
			ordered = append(ordered, job)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	deadline := time.Now().Add(m.timeLimit())
	best := bestCompletedSet(ordered, required, candsByJob, deadline)

	if len(best) == 0 {
		return allUnscheduled(m.Name(), jobList)
	}

	var subsetCands []candidate
	subsetRequired := make(map[int]float64, len(best))
	for _, job := range best {
		subsetCands = append(subsetCands, candsByJob[job.ID]...)
		subsetRequired[job.ID] = required[job.ID]
	}

	build := buildLP(subsetCands, subsetRequired, 0, false)
	x, err := build.solve(simplexTolerance)
	if err != nil {
		return allUnscheduled(m.Name(), jobList)
	}

	return reconstruct(m.Name(), jobList, subsetCands, x, capModel)
}

// bestCompletedSet branch-and-bounds over job inclusion, maximizing the
// count of fully-satisfiable jobs. Infeasibility is monotonic in inclusion
// (adding a job to an already-infeasible set cannot make it feasible), so a
// node failing its feasibility check prunes its whole subtree.
func bestCompletedSet(ordered []jobs.Job, required map[int]float64, candsByJob map[int][]candidate, deadline time.Time) []jobs.Job {
	var best []jobs.Job

	var recurse func(idx int, included []jobs.Job)
	recurse = func(idx int, included []jobs.Job) {
		if time.Now().After(deadline) {
			return
		}
		if !feasibleSet(included, required, candsByJob) {
			return
		}
		if idx == len(ordered) {
			if len(included) > len(best) {
				best = append([]jobs.Job{}, included...)
			}
			return
		}
		remaining := len(ordered) - idx
		if len(included)+remaining <= len(best) {
			return
		}
		recurse(idx+1, append(append([]jobs.Job{}, included...), ordered[idx]))
		recurse(idx+1, included)
	}
	recurse(0, nil)
	return best
}

// feasibleSet checks whether every job in included can be fully satisfied
// simultaneously: one equality per job requiring its full required_seconds
// (no shortfall slack), subject to shared slot capacities.
func feasibleSet(included []jobs.Job, required map[int]float64, candsByJob map[int][]candidate) bool {
	if len(included) == 0 {
		return true
	}
	var cands []candidate
	for _, job := range included {
		cands = append(cands, candsByJob[job.ID]...)
	}
	build := buildLP(cands, required, 0, false)
	_, err := build.solve(simplexTolerance)
	return err == nil
}
