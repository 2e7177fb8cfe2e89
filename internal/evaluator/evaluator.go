// Package evaluator computes per-plan summary statistics and cross-planner
// comparisons from completed Schedules (§4.7).
package evaluator

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/schedule"
)

// completionThreshold is the fraction of a job's bytes that must be covered
// by allocated throughput*time for the job to count as fully completed
// (§4.7: ">= 0.99 * size_bytes").
const completionThreshold = 0.99

// Summary is one planner's aggregate metrics.
type Summary struct {
	PlannerName        string
	JobsCompleted      int
	JobsDeadlineMet    int
	TotalEmissionsG    float64
	AverageThroughput  float64
	TotalAllocatedTime float64
	EmissionsPerByte   float64
}

// Evaluate computes a Summary for one planner's schedule against the job set
// it was run over (needed for size_bytes and deadline_hour lookups).
func Evaluate(s schedule.Schedule, jobList []jobs.Job) Summary {
	byID := jobs.ByID(jobList)

	allocatedBytes := make(map[int]float64, len(jobList))
	deadlineHeld := make(map[int]bool, len(jobList))
	var totalEmissions, totalTime float64
	var throughputs []float64

	for _, e := range s.Entries {
		allocatedBytes[e.JobID] += e.ThroughputBps * e.AllocatedSeconds / 8
		totalEmissions += e.CarbonEmissionsG
		totalTime += e.AllocatedSeconds
		throughputs = append(throughputs, e.ThroughputBps)
		if e.ForecastID <= e.DeadlineHour {
			deadlineHeld[e.JobID] = true
		}
	}

	completed := 0
	deadlineMet := 0
	var totalBytes float64
	for jobID, job := range byID {
		totalBytes += float64(job.SizeBytes)
		if allocatedBytes[jobID] >= completionThreshold*float64(job.SizeBytes) {
			completed++
		}
		if deadlineHeld[jobID] {
			deadlineMet++
		}
	}

	avgThroughput := 0.0
	if len(throughputs) > 0 {
		avgThroughput = floats.Sum(throughputs) / float64(len(throughputs))
	}

	emissionsPerByte := 0.0
	if totalBytes > 0 {
		emissionsPerByte = totalEmissions / totalBytes
	}

	return Summary{
		PlannerName:        s.PlannerName,
		JobsCompleted:      completed,
		JobsDeadlineMet:    deadlineMet,
		TotalEmissionsG:    totalEmissions,
		AverageThroughput:  avgThroughput,
		TotalAllocatedTime: totalTime,
		EmissionsPerByte:   emissionsPerByte,
	}
}

// Comparison names, for each metric, the planner whose Summary scores best.
type Comparison struct {
	Summaries               []Summary
	BestByJobsCompleted      string
	BestByDeadlineCompliance string
	BestByTotalEmissions     string
	BestByThroughput         string
	BestByEmissionsPerByte   string
}

// Compare evaluates every planner's schedule and ranks them per metric
// (§4.7: "Also computes cross-planner comparison (best by each metric)").
// Input order of schedules does not affect the result; summaries in the
// returned Comparison are sorted by planner name for deterministic output.
func Compare(schedules []schedule.Schedule, jobList []jobs.Job) Comparison {
	summaries := make([]Summary, 0, len(schedules))
	for _, s := range schedules {
		summaries = append(summaries, Evaluate(s, jobList))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].PlannerName < summaries[j].PlannerName })

	cmp := Comparison{Summaries: summaries}
	if len(summaries) == 0 {
		return cmp
	}

	cmp.BestByJobsCompleted = bestBy(summaries, func(s Summary) float64 { return float64(s.JobsCompleted) }, true)
	cmp.BestByDeadlineCompliance = bestBy(summaries, func(s Summary) float64 { return float64(s.JobsDeadlineMet) }, true)
	cmp.BestByTotalEmissions = bestBy(summaries, func(s Summary) float64 { return s.TotalEmissionsG }, false)
	cmp.BestByThroughput = bestBy(summaries, func(s Summary) float64 { return s.AverageThroughput }, true)
	cmp.BestByEmissionsPerByte = bestBy(summaries, func(s Summary) float64 { return s.EmissionsPerByte }, false)
	return cmp
}

// bestBy returns the planner name with the highest (higherIsBetter=true) or
// lowest value of metric; ties go to the first in sorted planner-name order.
func bestBy(summaries []Summary, metric func(Summary) float64, higherIsBetter bool) string {
	best := summaries[0]
	bestVal := metric(best)
	for _, s := range summaries[1:] {
		v := metric(s)
		if (higherIsBetter && v > bestVal) || (!higherIsBetter && v < bestVal) {
			best = s
			bestVal = v
		}
	}
	return best.PlannerName
}
