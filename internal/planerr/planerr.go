// Package planerr defines the sentinel error kinds shared across the planning
// core, so callers can distinguish recoverable per-job/per-cell failures from
// fatal load errors with errors.Is instead of string matching.
package planerr

import "errors"

var (
	// ErrForecastMissing means a (zone, hour) pair has no carbon-intensity
	// observation. Callers degrade to a zero contribution and log a warning;
	// it is never fatal.
	ErrForecastMissing = errors.New("forecast: zone/hour not found")

	// ErrSimulatorUnavailable means the external simulator produced no
	// SimOutput for a (route, job) pair. The corresponding association rows
	// are omitted rather than the build aborting.
	ErrSimulatorUnavailable = errors.New("simulator: no output for route/job")

	// ErrInsufficientCapacity means a reservation would drive a slot's
	// remaining capacity below zero. Recoverable inside a planner's route
	// attempt; triggers rollback of that attempt only.
	ErrInsufficientCapacity = errors.New("capacity: insufficient remaining seconds")

	// ErrDeadlineUnreachable means no eligible slot set for a job satisfies
	// its deadline on any candidate route. The job is placed in the
	// unscheduled set, not treated as a plan failure.
	ErrDeadlineUnreachable = errors.New("planner: no eligible slot set meets deadline")

	// ErrSolverInfeasible means the MILP solver returned infeasible or
	// unknown status. The plan degrades to an empty schedule with all jobs
	// unscheduled.
	ErrSolverInfeasible = errors.New("milp: solver returned infeasible or unknown status")

	// ErrInputMalformed means an input JSON/CSV file violates its expected
	// schema. Fatal at load time — never recovered from inside the planning
	// core.
	ErrInputMalformed = errors.New("input: malformed schema")
)
