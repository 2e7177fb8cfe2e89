package jobs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJobsFile(t *testing.T, raws []rawJob) string {
	t.Helper()
	data, err := json.Marshal(raws)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_ParsesValidJobs(t *testing.T) {
	path := writeJobsFile(t, []rawJob{
		{ID: 1, Bytes: 1000, FilesCount: 2, Deadline: 5, TypeTag: "bulk"},
	})
	jobList, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobList, 1)
	assert.Equal(t, Job{ID: 1, SizeBytes: 1000, FilesCount: 2, DeadlineHour: 5, TypeTag: "bulk"}, jobList[0])
}

func TestLoad_RejectsNonPositiveSize(t *testing.T) {
	path := writeJobsFile(t, []rawJob{{ID: 1, Bytes: 0, Deadline: 1}})
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsNegativeDeadline(t *testing.T) {
	path := writeJobsFile(t, []rawJob{{ID: 1, Bytes: 100, Deadline: -1}})
	_, err := Load(path)
	assert.Error(t, err)
}

func TestByID_IndexesByID(t *testing.T) {
	list := []Job{{ID: 1, SizeBytes: 10}, {ID: 2, SizeBytes: 20}}
	byID := ByID(list)
	assert.Equal(t, int64(20), byID[2].SizeBytes)
}
