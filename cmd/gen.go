package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jgoldverg/green-transfer-scheduler/internal/association"
	"github.com/jgoldverg/green-transfer-scheduler/internal/config"
	"github.com/jgoldverg/green-transfer-scheduler/internal/forecast"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/simulator"
	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
	"github.com/jgoldverg/green-transfer-scheduler/internal/zone"
)

var genStubSim bool

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Build the forecast window and the associations table (§4.1, §4.4)",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().BoolVar(&genStubSim, "stub-sim", false, "use a zero-output stub adapter instead of invoking the external simulator binary (useful for smoke-testing the pipeline without SimGrid installed)")
}

func runGen(_ *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	configureLogging(cfg.LogLevel)

	nodes, err := topology.LoadNodes(cfg.Paths.NodesFile)
	if err != nil {
		return err
	}
	nodesByName := topology.NodesByName(nodes)

	routes, err := topology.LoadTraceroutesDir(cfg.Paths.TraceroutesDir)
	if err != nil {
		return err
	}

	jobList, err := jobs.Load(cfg.Paths.JobsFile)
	if err != nil {
		return err
	}

	zones, err := zone.Load(cfg.Paths.WorldGeoJSON)
	if err != nil {
		return err
	}

	store, err := forecast.LoadCSV(cfg.Paths.HistoricalCIFile, time.Now(), cfg.Forecast.HorizonHours)
	if err != nil {
		return err
	}

	adapter, err := buildAdapter(cfg, routes, nodesByName)
	if err != nil {
		return err
	}

	builder := &association.Builder{
		Routes:      routes,
		NodesByName: nodesByName,
		Jobs:        jobList,
		Forecast:    store,
		Zones:       zones,
		Adapter:     adapter,
		Options: association.BuildOptions{
			SimWorkers:       cfg.Concurrency.SimWorkers,
			EmissionsWorkers: cfg.Concurrency.EmissionsWorkers,
		},
	}

	table, err := builder.Build(context.Background())
	if err != nil {
		return fmt.Errorf("building associations table: %w", err)
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", cfg.Paths.OutputDir, err)
	}
	outPath := cfg.Paths.AssociationsCSV
	if outPath == "" {
		outPath = filepath.Join(cfg.Paths.OutputDir, "associations_df.csv")
	}
	if err := association.WriteCSV(outPath, table); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"rows": len(table.Rows),
		"path": outPath,
	}).Info("gen: wrote associations table")
	return nil
}

func buildAdapter(cfg config.RunConfig, routes []topology.Route, nodesByName map[string]topology.Node) (simulator.Adapter, error) {
	if genStubSim {
		return simulator.NewStubAdapter(), nil
	}
	routesByKey := make(map[string]topology.Route, len(routes))
	for _, r := range routes {
		routesByKey[r.RouteKey] = r
	}
	if err := os.MkdirAll(cfg.Simulator.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating simulator work dir: %w", err)
	}
	return &simulator.SubprocessAdapter{
		BinaryPath: cfg.Simulator.BinaryPath,
		WorkDir:    cfg.Simulator.WorkDir,
		Routes:     routesByKey,
		Nodes:      nodesByName,
	}, nil
}
