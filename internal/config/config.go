// Package config groups the run-time settings the gen and schedule commands
// share: input/output paths, the forecast window, worker pool sizes, and the
// MILP solver's time budget (§6, §10.3).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PathsConfig locates the on-disk inputs and outputs described in §6.
type PathsConfig struct {
	NodesFile        string `yaml:"nodes_file"`
	JobsFile         string `yaml:"jobs_file"`
	TraceroutesDir   string `yaml:"traceroutes_dir"`
	HistoricalCIFile string `yaml:"historical_ci_file"`
	WorldGeoJSON     string `yaml:"world_geojson"`
	AssociationsCSV  string `yaml:"associations_csv"`
	OutputDir        string `yaml:"output_dir"`
}

// ForecastConfig sizes the carbon-intensity forecast horizon.
type ForecastConfig struct {
	HorizonHours int `yaml:"horizon_hours"`
}

// ConcurrencyConfig sizes the two AssociationBuilder worker pools (§5).
type ConcurrencyConfig struct {
	SimWorkers       int `yaml:"sim_workers"`
	EmissionsWorkers int `yaml:"emissions_workers"`
}

// SolverConfig bounds the MILPGreen planner's running time (§4.6.5).
type SolverConfig struct {
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"`
}

// SimulatorConfig locates the external simulator binary and its scratch
// directory (§6 "Subprocess interface").
type SimulatorConfig struct {
	BinaryPath string `yaml:"binary_path"`
	WorkDir    string `yaml:"work_dir"`
}

// RunConfig is the complete configuration for one gen/schedule invocation.
type RunConfig struct {
	Paths       PathsConfig       `yaml:"paths"`
	Forecast    ForecastConfig    `yaml:"forecast"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Solver      SolverConfig      `yaml:"solver"`
	Simulator   SimulatorConfig   `yaml:"simulator"`
	LogLevel    string            `yaml:"log_level"`
}

// Default returns a RunConfig with the documented defaults: 20-worker pools
// (§5), a 5000s solver budget (§4.6.5), and a 24-hour forecast horizon.
func Default() RunConfig {
	return RunConfig{
		Forecast:    ForecastConfig{HorizonHours: 24},
		Concurrency: ConcurrencyConfig{SimWorkers: 20, EmissionsWorkers: 20},
		Solver:      SolverConfig{TimeLimitSeconds: 5000},
		LogLevel:    "info",
	}
}

// Load reads a YAML config file over the documented defaults; fields absent
// from the file keep Default's values, while any field the file sets (even to
// zero) overrides them.
func Load(path string) (RunConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return cfg, nil
}
