package simulator

import (
	"context"
	"fmt"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// StubAdapter returns a fixed Output per (route, job) key, substituting for
// the external simulator in tests (§9).
type StubAdapter struct {
	Outputs map[string]Output // keyed by fmt.Sprintf("%s/%d", routeKey, jobID)
}

// NewStubAdapter builds a StubAdapter from a list of canned outputs.
func NewStubAdapter(outputs ...Output) *StubAdapter {
	s := &StubAdapter{Outputs: make(map[string]Output, len(outputs))}
	for _, o := range outputs {
		s.Outputs[stubKey(o.RouteKey, o.JobID)] = o
	}
	return s
}

func stubKey(routeKey string, jobID int) string {
	return fmt.Sprintf("%s/%d", routeKey, jobID)
}

// Simulate implements Adapter.
func (s *StubAdapter) Simulate(_ context.Context, req Request) (Output, error) {
	out, ok := s.Outputs[stubKey(req.RouteKey, req.JobID)]
	if !ok {
		return Output{}, fmt.Errorf("%w: no stub output for route=%s job=%d", planerr.ErrSimulatorUnavailable, req.RouteKey, req.JobID)
	}
	return out, nil
}
