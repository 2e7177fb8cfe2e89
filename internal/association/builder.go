package association

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jgoldverg/green-transfer-scheduler/internal/forecast"
	"github.com/jgoldverg/green-transfer-scheduler/internal/jobs"
	"github.com/jgoldverg/green-transfer-scheduler/internal/simulator"
	"github.com/jgoldverg/green-transfer-scheduler/internal/topology"
	"github.com/jgoldverg/green-transfer-scheduler/internal/zone"
)

// jouleKWh converts joules to kilowatt-hours (1 kWh = 3.6e6 J), §4.4.
const jouleKWh = 3.6e6

// BuildOptions configures the two worker pools described in §5: one for
// simulator fan-out (per route/job), one for emissions fan-out (per
// route/job/forecast-hour). Both default to 20 workers, matching the
// documented default in §5.
type BuildOptions struct {
	SimWorkers       int
	EmissionsWorkers int
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.SimWorkers <= 0 {
		o.SimWorkers = 20
	}
	if o.EmissionsWorkers <= 0 {
		o.EmissionsWorkers = 20
	}
	return o
}

// Builder constructs the associations Table from routes, jobs, a forecast
// store, a zone resolver, and a simulator adapter (§4.4).
type Builder struct {
	Routes      []topology.Route
	NodesByName map[string]topology.Node
	Jobs        []jobs.Job
	Forecast    *forecast.Store
	Zones       *zone.Resolver
	Adapter     simulator.Adapter
	Options     BuildOptions
}

// simTask is one (route, job) pair awaiting simulation.
type simTask struct {
	route topology.Route
	job   jobs.Job
}

// Build runs both fan-outs and returns the completed Table. Simulator
// failures and forecast-missing cells are logged and degrade gracefully
// (§4.3, §4.4, §7); Build itself only returns an error for a context
// cancellation, never for a per-cell failure.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	opts := b.Options.withDefaults()
	horizon := b.Forecast.Horizon()

	eligibleRoutes := make([]topology.Route, 0, len(b.Routes))
	routeZones := make(map[string][]string, len(b.Routes))
	for _, r := range b.Routes {
		if !topology.Eligible(r, b.NodesByName) {
			continue
		}
		eligibleRoutes = append(eligibleRoutes, r)
		routeZones[r.RouteKey] = b.Zones.ResolveRoute(r.Hops)
	}

	outputs, err := b.runSimulations(ctx, eligibleRoutes, opts.SimWorkers)
	if err != nil {
		return nil, err
	}

	table := NewTable()
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.EmissionsWorkers)

	for _, route := range eligibleRoutes {
		zones := routeZones[route.RouteKey]
		for _, job := range b.Jobs {
			out, ok := outputs[simKey(route.RouteKey, job.ID)]
			if !ok {
				continue // SimulatorUnavailable already logged by runSimulations
			}
			route := route
			job := job
			for forecastID := 0; forecastID < horizon; forecastID++ {
				forecastID := forecastID
				wg.Add(1)
				sem <- struct{}{}
				go func() {
					defer wg.Done()
					defer func() { <-sem }()
					row := b.computeRow(route, job, out, zones, forecastID, horizon)
					mu.Lock()
					table.Append(row)
					mu.Unlock()
				}()
			}
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func simKey(routeKey string, jobID int) string {
	return fmt.Sprintf("%s/%d", routeKey, jobID)
}

// runSimulations fans out one simulator invocation per eligible (route, job)
// pair across a bounded worker pool and collects results through a
// thread-safe sink (§5). Missing outputs are logged as SimulatorUnavailable
// and simply omitted — never fatal.
func (b *Builder) runSimulations(ctx context.Context, routes []topology.Route, workers int) (map[string]simulator.Output, error) {
	tasks := make(chan simTask)
	results := make(map[string]simulator.Output)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				out, err := b.Adapter.Simulate(ctx, simulator.Request{
					RouteKey:  task.route.RouteKey,
					JobID:     task.job.ID,
					SizeBytes: task.job.SizeBytes,
				})
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"route_key": task.route.RouteKey,
						"job_id":    task.job.ID,
					}).WithError(err).Warn("association: simulator unavailable, omitting rows")
					continue
				}
				mu.Lock()
				results[simKey(task.route.RouteKey, task.job.ID)] = out
				mu.Unlock()
			}
		}()
	}

loop:
	for _, route := range routes {
		for _, job := range b.Jobs {
			select {
			case tasks <- simTask{route: route, job: job}:
			case <-ctx.Done():
				break loop
			}
		}
	}
	close(tasks)
	wg.Wait()

	return results, ctx.Err()
}

// computeRow implements the per-hop emissions allocation formula in §4.4.
func (b *Builder) computeRow(route topology.Route, job jobs.Job, out simulator.Output, zones []string, forecastID, horizon int) Row {
	transferTimeS := out.TransferDurationS
	throughput := 0.0
	if transferTimeS > 0 {
		throughput = float64(job.SizeBytes) * 8 / transferTimeS
	}

	tHours := transferTimeS / 3600.0
	n := int(math.Ceil(tHours))
	if n > horizon {
		n = horizon
	}

	var totalHostJ, totalLinkJ, carbonG float64

	for i := range route.Hops {
		hostName := route.HostName(i, b.NodesByName)
		eHost := out.HostEnergyJ[hostName]
		var eLink float64
		if i > 0 {
			linkName := route.LinkName(i)
			eLink = out.LinkEnergyJ[linkName]
		}
		totalHostJ += eHost
		totalLinkJ += eLink

		eHop := eHost + eLink
		if eHop == 0 {
			continue
		}
		eHourly := eHop / tHours

		zoneID := zones[i]
		if zoneID == "" {
			continue // null zone contributes zero CI (§4.2)
		}

		for k := 0; k < n; k++ {
			frac := 1.0
			if k == n-1 {
				frac = tHours - float64(n-1)
			}
			ci, err := b.Forecast.Get(zoneID, (forecastID+k)%horizon)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"zone_id": zoneID, "hour": (forecastID + k) % horizon,
				}).Warn("association: forecast missing, treating as zero CI")
				continue
			}
			kWh := (eHourly * frac) / jouleKWh
			carbonG += kWh * ci
		}
	}

	return Row{
		SourceNode:       route.Source,
		DestinationNode:  route.Destination,
		RouteKey:         route.RouteKey,
		JobID:            job.ID,
		ForecastID:       forecastID,
		TransferTimeS:    transferTimeS,
		ThroughputBps:    throughput,
		HostJoules:       totalHostJ,
		LinkJoules:       totalLinkJ,
		TotalJoules:      totalHostJ + totalLinkJ,
		CarbonEmissionsG: carbonG,
	}
}
