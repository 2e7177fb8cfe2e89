// Package association builds the three-way (route, job, forecast hour)
// association table that predicts transfer time, throughput, energy, and
// carbon emissions for every eligible combination (§4.4).
package association

// Row is one (route_key, job_id, forecast_id) association record.
type Row struct {
	SourceNode       string
	DestinationNode  string
	RouteKey         string
	JobID            int
	ForecastID       int
	TransferTimeS    float64
	ThroughputBps    float64
	HostJoules       float64
	LinkJoules       float64
	TotalJoules      float64
	CarbonEmissionsG float64
}
