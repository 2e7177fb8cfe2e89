package association

// jobRouteKey and routeForecastKey index rows for the planner hot paths (§9:
// "in-memory representation should be a column-oriented structure with
// auxiliary indexes: by (job_id, route_key), by (route_key, forecast_id), by
// job_id").
type jobRouteKey struct {
	jobID    int
	routeKey string
}

type routeForecastKey struct {
	routeKey   string
	forecastID int
}

// Table is the in-memory associations table plus its auxiliary indexes.
// Unordered by construction (built concurrently, §5); callers needing
// deterministic iteration must sort explicitly.
type Table struct {
	Rows []Row

	byJobRoute      map[jobRouteKey][]int
	byRouteForecast map[routeForecastKey][]int
	byJob           map[int][]int
}

// NewTable builds an empty Table.
func NewTable() *Table {
	return &Table{
		byJobRoute:      make(map[jobRouteKey][]int),
		byRouteForecast: make(map[routeForecastKey][]int),
		byJob:           make(map[int][]int),
	}
}

// Append adds a row and updates all indexes. Not safe for concurrent use —
// Builder's emissions workers call Append while holding a shared mutex.
func (t *Table) Append(r Row) {
	idx := len(t.Rows)
	t.Rows = append(t.Rows, r)
	jr := jobRouteKey{r.JobID, r.RouteKey}
	rf := routeForecastKey{r.RouteKey, r.ForecastID}
	t.byJobRoute[jr] = append(t.byJobRoute[jr], idx)
	t.byRouteForecast[rf] = append(t.byRouteForecast[rf], idx)
	t.byJob[r.JobID] = append(t.byJob[r.JobID], idx)
}

// ForJobRoute returns the rows for (jobID, routeKey), one per forecast hour
// that has a row.
func (t *Table) ForJobRoute(jobID int, routeKey string) []Row {
	return t.rowsAt(t.byJobRoute[jobRouteKey{jobID, routeKey}])
}

// ForRouteForecast returns the rows for (routeKey, forecastID), one per job
// that has a row in that slot.
func (t *Table) ForRouteForecast(routeKey string, forecastID int) []Row {
	return t.rowsAt(t.byRouteForecast[routeForecastKey{routeKey, forecastID}])
}

// ForJob returns every row for jobID across all routes and forecast hours.
func (t *Table) ForJob(jobID int) []Row {
	return t.rowsAt(t.byJob[jobID])
}

// RouteKeysForJob returns the distinct route keys that have at least one row
// for jobID, in first-seen order.
func (t *Table) RouteKeysForJob(jobID int) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, idx := range t.byJob[jobID] {
		rk := t.Rows[idx].RouteKey
		if !seen[rk] {
			seen[rk] = true
			keys = append(keys, rk)
		}
	}
	return keys
}

func (t *Table) rowsAt(indexes []int) []Row {
	if len(indexes) == 0 {
		return nil
	}
	rows := make([]Row, len(indexes))
	for i, idx := range indexes {
		rows[i] = t.Rows[idx]
	}
	return rows
}
