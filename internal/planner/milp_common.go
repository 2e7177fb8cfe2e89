package planner

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/capacity"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// epsilon is the documented reconstruction threshold below which an x value
// is treated as zero allocation (§4.6.5: "documented ε = 1e-3").
const epsilon = 1e-3

// candidate is one (job, route, forecast_id) decision variable x_{j,t,r}.
type candidate struct {
	job jobs.Job
	row association.Row
}

// collectCandidates gathers every (job, row) pair eligible for the LP: rows
// present in the table at forecast_id <= job.deadline_hour (§4.6.5).
func collectCandidates(table *association.Table, jobList []jobs.Job) []candidate {
	var out []candidate
	for _, job := range jobList {
		rows := table.ForJob(job.ID)
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].RouteKey != rows[j].RouteKey {
				return rows[i].RouteKey < rows[j].RouteKey
			}
			return rows[i].ForecastID < rows[j].ForecastID
		})
		for _, r := range rows {
			if r.ForecastID <= job.DeadlineHour {
				out = append(out, candidate{job: job, row: r})
			}
		}
	}
	return out
}

// requiredSecondsFor resolves required_seconds_j as the job's best-case
// transfer_time_s across any candidate route, matching the constant SJF uses
// to size a placement (§4.6.5 Open Question: the spec leaves "required
// seconds" independent of which route ultimately carries the job).
func requiredSecondsFor(job jobs.Job, cands []candidate) float64 {
	var rows []association.Row
	for _, c := range cands {
		if c.job.ID == job.ID {
			rows = append(rows, c.row)
		}
	}
	return minTransferTime(rows)
}

// slotKey identifies a (route_key, forecast_id) capacity constraint.
type slotKey struct {
	routeKey   string
	forecastID int
}

// lpBuild is the standard-form system Ax = b, x >= 0, minimize c^T x, plus
// bookkeeping to map solved values back onto candidates.
type lpBuild struct {
	c        []float64
	A        *mat.Dense
	b        []float64
	nx       int // number of x_{j,t,r} variables (the first nx columns)
	variables []candidate
}

// buildLP assembles the shared constraint structure used by both MILPGreen
// formulations: one equality row per job (required seconds, optionally with
// an unmet slack), one equality row per (route, forecast) capacity cell, and
// one equality row per x upper bound (x_i + slack_i = 1). withUnmet controls
// whether a per-job shortfall slack is included (Normalized) or the
// constraint instead must bind exactly (Binary, one job subset at a time).
func buildLP(cands []candidate, required map[int]float64, unmetPenalty float64, withUnmet bool) lpBuild {
	nx := len(cands)

	jobIdx := make(map[int]int)
	var jobIDs []int
	for _, c := range cands {
		if _, ok := jobIdx[c.job.ID]; !ok {
			jobIdx[c.job.ID] = len(jobIDs)
			jobIDs = append(jobIDs, c.job.ID)
		}
	}

	slotIdx := make(map[slotKey]int)
	var slots []slotKey
	for _, c := range cands {
		k := slotKey{c.row.RouteKey, c.row.ForecastID}
		if _, ok := slotIdx[k]; !ok {
			slotIdx[k] = len(slots)
			slots = append(slots, k)
		}
	}

	nUnmet := 0
	if withUnmet {
		nUnmet = len(jobIDs)
	}
	nCapSlack := len(slots)
	nUBSlack := nx

	nVars := nx + nUnmet + nCapSlack + nUBSlack
	nRows := len(jobIDs) + len(slots) + nx

	A := mat.NewDense(nRows, nVars, nil)
	b := make([]float64, nRows)
	c := make([]float64, nVars)

	// Objective: minimize sum of x_i * carbon_i (+ penalty * unmet_j).
	for i, cand := range cands {
		if cand.row.TransferTimeS > 0 {
			c[i] = cand.row.CarbonEmissionsG
		}
	}
	if withUnmet {
		for j := 0; j < nUnmet; j++ {
			c[nx+j] = unmetPenalty
		}
	}

	row := 0
	// Per-job: sum_{t,r} x * T_{j,r} (+ unmet_j) = required_seconds_j.
	for _, jobID := range jobIDs {
		ji := jobIdx[jobID]
		for i, cand := range cands {
			if cand.job.ID == jobID {
				A.Set(row, i, cand.row.TransferTimeS)
			}
		}
		if withUnmet {
			A.Set(row, nx+ji, 1)
		}
		b[row] = required[jobID]
		row++
	}

	// Per slot/route capacity: sum_j x * T_{j,r} + capSlack = S.
	for si, k := range slots {
		for i, cand := range cands {
			if cand.row.RouteKey == k.routeKey && cand.row.ForecastID == k.forecastID {
				A.Set(row, i, cand.row.TransferTimeS)
			}
		}
		A.Set(row, nx+nUnmet+si, 1)
		b[row] = capacity.SlotSeconds
		row++
	}

	// Per-variable upper bound: x_i + ubSlack_i = 1.
	for i := 0; i < nx; i++ {
		A.Set(row, i, 1)
		A.Set(row, nx+nUnmet+nCapSlack+i, 1)
		b[row] = 1
		row++
	}

	return lpBuild{c: c, A: A, b: b, nx: nx, variables: cands}
}

// solve runs the simplex method over the standard-form system, translating
// gonum's error into ErrSolverInfeasible so callers degrade per §4.6.5
// ("On non-optimal return... otherwise returns an empty schedule").
func (build lpBuild) solve(tol float64) ([]float64, error) {
	_, x, err := lp.Simplex(nil, build.c, build.A, build.b, tol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", planerr.ErrSolverInfeasible, err)
	}
	return x[:build.nx], nil
}
