package association

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

var columns = []string{
	"source_node", "destination_node", "route_key", "job_id", "forecast_id",
	"transfer_time_s", "throughput_bps", "host_joules", "link_joules",
	"total_joules", "carbon_emissions_g",
}

// WriteCSV persists the table for planner consumption, per §4.4 ("The full
// table is persisted as CSV") and §6 (associations_df.csv).
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating associations csv %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flush error surfaces via w.Error() below

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing associations csv header: %w", err)
	}
	for _, r := range t.Rows {
		record := []string{
			r.SourceNode,
			r.DestinationNode,
			r.RouteKey,
			strconv.Itoa(r.JobID),
			strconv.Itoa(r.ForecastID),
			strconv.FormatFloat(r.TransferTimeS, 'f', -1, 64),
			strconv.FormatFloat(r.ThroughputBps, 'f', -1, 64),
			strconv.FormatFloat(r.HostJoules, 'f', -1, 64),
			strconv.FormatFloat(r.LinkJoules, 'f', -1, 64),
			strconv.FormatFloat(r.TotalJoules, 'f', -1, 64),
			strconv.FormatFloat(r.CarbonEmissionsG, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing associations csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a Table from an associations_df.csv cache file (§6), used
// both by planner runs that skip rebuilding and by the round-trip test
// property (§8).
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening associations csv %q: %v", planerr.ErrInputMalformed, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading associations csv header: %v", planerr.ErrInputMalformed, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	table := NewTable()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading associations csv row: %v", planerr.ErrInputMalformed, err)
		}
		row, err := parseRow(record, idx)
		if err != nil {
			return nil, err
		}
		table.Append(row)
	}
	return table, nil
}

func parseRow(record []string, idx map[string]int) (Row, error) {
	jobID, err := strconv.Atoi(record[idx["job_id"]])
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad job_id: %v", planerr.ErrInputMalformed, err)
	}
	forecastID, err := strconv.Atoi(record[idx["forecast_id"]])
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad forecast_id: %v", planerr.ErrInputMalformed, err)
	}
	transferTime, err := strconv.ParseFloat(record[idx["transfer_time_s"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad transfer_time_s: %v", planerr.ErrInputMalformed, err)
	}
	throughput, err := strconv.ParseFloat(record[idx["throughput_bps"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad throughput_bps: %v", planerr.ErrInputMalformed, err)
	}
	hostJ, err := strconv.ParseFloat(record[idx["host_joules"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad host_joules: %v", planerr.ErrInputMalformed, err)
	}
	linkJ, err := strconv.ParseFloat(record[idx["link_joules"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad link_joules: %v", planerr.ErrInputMalformed, err)
	}
	totalJ, err := strconv.ParseFloat(record[idx["total_joules"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad total_joules: %v", planerr.ErrInputMalformed, err)
	}
	carbon, err := strconv.ParseFloat(record[idx["carbon_emissions_g"]], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad carbon_emissions_g: %v", planerr.ErrInputMalformed, err)
	}

	return Row{
		SourceNode:       record[idx["source_node"]],
		DestinationNode:  record[idx["destination_node"]],
		RouteKey:         record[idx["route_key"]],
		JobID:            jobID,
		ForecastID:       forecastID,
		TransferTimeS:    transferTime,
		ThroughputBps:    throughput,
		HostJoules:       hostJ,
		LinkJoules:       linkJ,
		TotalJoules:      totalJ,
		CarbonEmissionsG: carbon,
	}, nil
}
