package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// rawRow is one historical_ci.csv record (§6): datetime, zone_id, ci,
// ci_lifecycle.
type rawRow struct {
	datetime     time.Time
	zoneID       string
	ci           float64
	ciLifecycle  float64
}

// Clean drops rows with a negative ci, grounded on the original
// forecast_cleaning.py normalization step (rows with a non-numeric ci are
// already skipped by LoadCSV while parsing). Returns the surviving rows;
// dropped rows are logged as warnings, never fatal.
func Clean(rows []rawRow) []rawRow {
	out := rows[:0:0]
	for _, r := range rows {
		if r.ci < 0 {
			logrus.WithFields(logrus.Fields{"zone_id": r.zoneID, "datetime": r.datetime}).
				Warn("forecast: dropping row with negative ci")
			continue
		}
		out = append(out, r)
	}
	return out
}

// LoadCSV reads historical_ci.csv, windows it to [start, start+H*1h), and
// builds a Store with hour_offset assigned by row order within the window,
// per zone (§4.1).
func LoadCSV(path string, start time.Time, horizonHours int) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening historical CI file %q: %v", planerr.ErrInputMalformed, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading historical CI header: %v", planerr.ErrInputMalformed, err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(horizonHours) * time.Hour)

	var rows []rawRow
	lineNo := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, fmt.Errorf("%w: historical CI row %d: %v", planerr.ErrInputMalformed, lineNo, err)
		}
		ts, err := time.Parse(time.RFC3339, record[col.datetime])
		if err != nil {
			return nil, fmt.Errorf("%w: historical CI row %d: bad datetime %q: %v", planerr.ErrInputMalformed, lineNo, record[col.datetime], err)
		}
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		ci, err := strconv.ParseFloat(record[col.ci], 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"row": lineNo}).Warn("forecast: dropping row with non-numeric ci")
			continue
		}
		var ciLifecycle float64
		if col.ciLifecycle >= 0 && record[col.ciLifecycle] != "" {
			ciLifecycle, _ = strconv.ParseFloat(record[col.ciLifecycle], 64)
		}
		rows = append(rows, rawRow{
			datetime:    ts,
			zoneID:      record[col.zoneID],
			ci:          ci,
			ciLifecycle: ciLifecycle,
		})
	}

	rows = Clean(rows)

	byZone := make(map[string][]rawRow)
	for _, r := range rows {
		byZone[r.zoneID] = append(byZone[r.zoneID], r)
	}

	store := NewStore(horizonHours)
	for zone, zoneRows := range byZone {
		sort.SliceStable(zoneRows, func(i, j int) bool { return zoneRows[i].datetime.Before(zoneRows[j].datetime) })
		for idx, r := range zoneRows {
			if idx >= horizonHours {
				break
			}
			store.Set(zone, idx, r.ci)
		}
	}
	return store, nil
}

type columns struct {
	datetime    int
	zoneID      int
	ci          int
	ciLifecycle int
}

func columnIndex(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	c := columns{ciLifecycle: -1}
	var ok bool
	if c.datetime, ok = idx["datetime"]; !ok {
		return c, fmt.Errorf("%w: historical CI missing \"datetime\" column", planerr.ErrInputMalformed)
	}
	if c.zoneID, ok = idx["zone_id"]; !ok {
		return c, fmt.Errorf("%w: historical CI missing \"zone_id\" column", planerr.ErrInputMalformed)
	}
	if c.ci, ok = idx["ci"]; !ok {
		return c, fmt.Errorf("%w: historical CI missing \"ci\" column", planerr.ErrInputMalformed)
	}
	if i, ok := idx["ci_lifecycle"]; ok {
		c.ciLifecycle = i
	}
	return c, nil
}
