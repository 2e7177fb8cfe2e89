package schedule

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVThenReadCSV_RoundTrips(t *testing.T) {
	sched := Schedule{
		PlannerName: "green",
		Entries: []Entry{
			{
				JobID: 1, RouteKey: "a_b", SourceNode: "a", DestinationNode: "b",
				ForecastID: 3, AllocatedSeconds: 1800, CarbonEmissionsG: 12.5,
				ThroughputBps: 1e9, TransferTimeS: 3600, DeadlineHour: 10,
			},
			{
				JobID: 2, RouteKey: "c_d", SourceNode: "c", DestinationNode: "d",
				ForecastID: 0, AllocatedSeconds: 3600, CarbonEmissionsG: 0,
				ThroughputBps: 5e8, TransferTimeS: 3600, DeadlineHour: 1,
			},
		},
		UnscheduledJobIDs: []int{99},
	}

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, WriteCSV(path, sched))

	entries, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, entries, len(sched.Entries))
	for i, want := range sched.Entries {
		assert.Equal(t, want, entries[i])
	}
}

func TestAllocatedFraction(t *testing.T) {
	e := Entry{AllocatedSeconds: 1800}
	assert.Equal(t, 0.5, e.AllocatedFraction())
}
