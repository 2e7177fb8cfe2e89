package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

var columns = []string{
	"job_id", "route_key", "source_node", "destination_node", "forecast_id",
	"allocated_seconds", "allocated_fraction", "carbon_emissions_g",
	"throughput_bps", "transfer_time_s", "deadline_hour",
}

// WriteCSV writes one row per Entry to path, grounded on the original
// output.py's consistent per-planner column set (§6, SPEC_FULL §12).
func WriteCSV(path string, s Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating schedule csv %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flush error surfaces via w.Error() below

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing schedule csv header: %w", err)
	}
	for _, e := range s.Entries {
		record := []string{
			strconv.Itoa(e.JobID),
			e.RouteKey,
			e.SourceNode,
			e.DestinationNode,
			strconv.Itoa(e.ForecastID),
			strconv.FormatFloat(e.AllocatedSeconds, 'f', -1, 64),
			strconv.FormatFloat(e.AllocatedFraction(), 'f', -1, 64),
			strconv.FormatFloat(e.CarbonEmissionsG, 'f', -1, 64),
			strconv.FormatFloat(e.ThroughputBps, 'f', -1, 64),
			strconv.FormatFloat(e.TransferTimeS, 'f', -1, 64),
			strconv.Itoa(e.DeadlineHour),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing schedule csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV reads back a schedule CSV written by WriteCSV, used by the
// round-trip test property (§8).
func ReadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening schedule csv %q: %v", planerr.ErrInputMalformed, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading schedule csv header: %v", planerr.ErrInputMalformed, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	var entries []Entry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading schedule csv row: %v", planerr.ErrInputMalformed, err)
		}
		e, err := parseRow(record, idx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(record []string, idx map[string]int) (Entry, error) {
	jobID, err := strconv.Atoi(record[idx["job_id"]])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad job_id: %v", planerr.ErrInputMalformed, err)
	}
	forecastID, err := strconv.Atoi(record[idx["forecast_id"]])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad forecast_id: %v", planerr.ErrInputMalformed, err)
	}
	deadlineHour, err := strconv.Atoi(record[idx["deadline_hour"]])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad deadline_hour: %v", planerr.ErrInputMalformed, err)
	}
	allocatedSeconds, err := strconv.ParseFloat(record[idx["allocated_seconds"]], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad allocated_seconds: %v", planerr.ErrInputMalformed, err)
	}
	carbon, err := strconv.ParseFloat(record[idx["carbon_emissions_g"]], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad carbon_emissions_g: %v", planerr.ErrInputMalformed, err)
	}
	throughput, err := strconv.ParseFloat(record[idx["throughput_bps"]], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad throughput_bps: %v", planerr.ErrInputMalformed, err)
	}
	transferTime, err := strconv.ParseFloat(record[idx["transfer_time_s"]], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad transfer_time_s: %v", planerr.ErrInputMalformed, err)
	}

	return Entry{
		JobID:            jobID,
		RouteKey:         record[idx["route_key"]],
		SourceNode:       record[idx["source_node"]],
		DestinationNode:  record[idx["destination_node"]],
		ForecastID:       forecastID,
		AllocatedSeconds: allocatedSeconds,
		CarbonEmissionsG: carbon,
		ThroughputBps:    throughput,
		TransferTimeS:    transferTime,
		DeadlineHour:     deadlineHour,
	}, nil
}
