package simulator

import (
	"context"
	"testing"
)

func TestStubAdapter_ReturnsCannedOutput(t *testing.T) {
	adapter := NewStubAdapter(Output{RouteKey: "a_b", JobID: 1, TransferDurationS: 10})
	out, err := adapter.Simulate(context.Background(), Request{RouteKey: "a_b", JobID: 1})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if out.TransferDurationS != 10 {
		t.Errorf("TransferDurationS = %v, want 10", out.TransferDurationS)
	}
}

func TestStubAdapter_UnknownRequestReturnsSimulatorUnavailable(t *testing.T) {
	adapter := NewStubAdapter()
	if _, err := adapter.Simulate(context.Background(), Request{RouteKey: "x_y", JobID: 1}); err == nil {
		t.Errorf("expected error for a request with no canned output")
	}
}
