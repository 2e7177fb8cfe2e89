// Package schedule holds the planner output artifact: a set of
// ScheduleEntries plus CSV (de)serialization.
package schedule

// Entry is one (job, route, slot) allocation, the unit every planner emits
// (§3).
type Entry struct {
	JobID            int
	RouteKey         string
	SourceNode       string
	DestinationNode  string
	ForecastID       int
	AllocatedSeconds float64
	CarbonEmissionsG float64
	ThroughputBps    float64
	TransferTimeS    float64
	DeadlineHour     int
}

// AllocatedFraction returns allocated_seconds / S, the fraction of the hour
// slot this entry consumes.
func (e Entry) AllocatedFraction() float64 {
	return e.AllocatedSeconds / 3600.0
}

// Schedule is one planner's complete output: its entries plus the job ids it
// could not place (§4.6: "Failures are reported via unscheduled_job_ids
// rather than aborting the plan").
type Schedule struct {
	PlannerName      string
	Entries          []Entry
	UnscheduledJobIDs []int
}
