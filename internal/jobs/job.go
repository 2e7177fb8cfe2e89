// Package jobs holds the transfer job model and its loader.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// Job is a bulk data-transfer request with a deadline expressed as a 0-based,
// inclusive forecast-hour offset.
type Job struct {
	ID           int
	SizeBytes    int64
	FilesCount   int
	DeadlineHour int
	TypeTag      string
}

type rawJob struct {
	ID           int    `json:"id"`
	Bytes        int64  `json:"bytes"`
	FilesCount   int    `json:"files_count"`
	Deadline     int    `json:"deadline"`
	TypeTag      string `json:"type"`
}

// Load reads jobs.json (§6) and validates size_bytes > 0, deadline_hour >= 0.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading jobs file %q: %v", planerr.ErrInputMalformed, path, err)
	}
	var raws []rawJob
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: decoding jobs file %q: %v", planerr.ErrInputMalformed, path, err)
	}

	out := make([]Job, 0, len(raws))
	for _, r := range raws {
		if r.Bytes <= 0 {
			return nil, fmt.Errorf("%w: job %d has non-positive size_bytes %d", planerr.ErrInputMalformed, r.ID, r.Bytes)
		}
		if r.Deadline < 0 {
			return nil, fmt.Errorf("%w: job %d has negative deadline_hour %d", planerr.ErrInputMalformed, r.ID, r.Deadline)
		}
		out = append(out, Job{
			ID:           r.ID,
			SizeBytes:    r.Bytes,
			FilesCount:   r.FilesCount,
			DeadlineHour: r.Deadline,
			TypeTag:      r.TypeTag,
		})
	}
	return out, nil
}

// ByID indexes a job slice for O(1) lookup by id.
func ByID(list []Job) map[int]Job {
	byID := make(map[int]Job, len(list))
	for _, j := range list {
		byID[j.ID] = j
	}
	return byID
}
