package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
)

// outputFile mirrors energy_consumption_{route_key}_{job_id}_.json (§6). Any
// other schema is a hard failure of the adapter's contract.
type outputFile struct {
	Hosts             map[string]float64 `json:"hosts"`
	Links             map[string]float64 `json:"links"`
	TotalEnergyHosts  float64            `json:"total_energy_hosts"`
	TotalLinkEnergy   float64            `json:"total_link_energy"`
	TransferDuration  float64            `json:"transfer_duration"`
	JobSizeBytes      int64              `json:"job_size_bytes"`
}

// SubprocessAdapter invokes an external simulator binary with a generated
// platform description and parses its JSON output file, grounded on
// SimGridSimulator.run_simulation / parse_simulation_output.
type SubprocessAdapter struct {
	// BinaryPath is the external simulator executable.
	BinaryPath string
	// WorkDir holds generated platform-description files and is where the
	// simulator is expected to write its output JSON.
	WorkDir string
	// Routes and Nodes are looked up by RouteKey/name to build the platform
	// description for each request.
	Routes map[string]topology.Route
	Nodes  map[string]topology.Node
}

// Simulate builds a platform description for req.RouteKey, invokes the
// simulator binary, and parses its output file. Returns
// planerr.ErrSimulatorUnavailable if the binary exits non-zero or its output
// is missing (the caller omits the corresponding association rows rather
// than aborting the whole build).
func (a *SubprocessAdapter) Simulate(ctx context.Context, req Request) (Output, error) {
	route, ok := a.Routes[req.RouteKey]
	if !ok {
		return Output{}, fmt.Errorf("%w: unknown route %q", planerr.ErrSimulatorUnavailable, req.RouteKey)
	}
	platform, err := BuildPlatform(route, a.Nodes)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", planerr.ErrSimulatorUnavailable, err)
	}

	platformPath := filepath.Join(a.WorkDir, fmt.Sprintf("platform_%s_%d.json", req.RouteKey, req.JobID))
	if err := writeJSON(platformPath, platform); err != nil {
		return Output{}, fmt.Errorf("%w: writing platform description: %v", planerr.ErrSimulatorUnavailable, err)
	}

	outputPath := filepath.Join(a.WorkDir, fmt.Sprintf("energy_consumption_%s_%d_.json", req.RouteKey, req.JobID))

	cmd := exec.CommandContext(ctx, a.BinaryPath, platformPath, outputPath, fmt.Sprintf("%d", req.SizeBytes), route.Destination)
	if err := cmd.Run(); err != nil {
		return Output{}, fmt.Errorf("%w: simulator exited with error for route=%s job=%d: %v",
			planerr.ErrSimulatorUnavailable, req.RouteKey, req.JobID, err)
	}

	return parseOutputFile(outputPath, req)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func parseOutputFile(path string, req Request) (Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Output{}, fmt.Errorf("%w: reading output for route=%s job=%d: %v",
			planerr.ErrSimulatorUnavailable, req.RouteKey, req.JobID, err)
	}
	var of outputFile
	if err := json.Unmarshal(data, &of); err != nil {
		return Output{}, fmt.Errorf("%w: decoding output for route=%s job=%d: %v",
			planerr.ErrSimulatorUnavailable, req.RouteKey, req.JobID, err)
	}
	if of.TransferDuration <= 0 {
		return Output{}, fmt.Errorf("%w: route=%s job=%d reported non-positive transfer_duration",
			planerr.ErrSimulatorUnavailable, req.RouteKey, req.JobID)
	}
	return Output{
		RouteKey:          req.RouteKey,
		JobID:             req.JobID,
		TransferDurationS: of.TransferDuration,
		HostEnergyJ:       of.Hosts,
		LinkEnergyJ:       of.Links,
		TotalHostEnergyJ:  of.TotalEnergyHosts,
		TotalLinkEnergyJ:  of.TotalLinkEnergy,
	}, nil
}
