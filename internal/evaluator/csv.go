package evaluator

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var columns = []string{
	"planner", "jobs_completed", "jobs_deadline_met", "total_emissions_g",
	"average_throughput_bps", "total_allocated_seconds", "emissions_per_byte_g",
}

// WriteComparisonCSV writes algorithm_comparison.csv: one row per planner
// summary (§6).
func WriteComparisonCSV(path string, cmp Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating comparison csv %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flush error surfaces via w.Error() below

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing comparison csv header: %w", err)
	}
	for _, s := range cmp.Summaries {
		record := []string{
			s.PlannerName,
			strconv.Itoa(s.JobsCompleted),
			strconv.Itoa(s.JobsDeadlineMet),
			strconv.FormatFloat(s.TotalEmissionsG, 'f', -1, 64),
			strconv.FormatFloat(s.AverageThroughput, 'f', -1, 64),
			strconv.FormatFloat(s.TotalAllocatedTime, 'f', -1, 64),
			strconv.FormatFloat(s.EmissionsPerByte, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing comparison csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
