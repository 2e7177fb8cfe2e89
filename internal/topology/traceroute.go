package topology

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// jsonlLine mirrors one line of a traceroutes/*.jsonl file (§6).
type jsonlLine struct {
	Metadata struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
	} `json:"metadata"`
	Hops []struct {
		IP    string  `json:"ip"`
		TTL   int     `json:"ttl"`
		RTTMs float64 `json:"rtt_ms"`
		Geo   *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"geo"`
	} `json:"hops"`
}

func (l jsonlLine) toRoute() Route {
	route := Route{
		RouteKey:    NewRouteKey(l.Metadata.Source, l.Metadata.Destination),
		Source:      l.Metadata.Source,
		Destination: l.Metadata.Destination,
		Hops:        make([]Hop, 0, len(l.Hops)),
	}
	for _, h := range l.Hops {
		hop := Hop{
			IP:         h.IP,
			TTL:        h.TTL,
			RTTSeconds: h.RTTMs / 1000.0,
		}
		if h.Geo != nil {
			hop.Lat = h.Geo.Lat
			hop.Lon = h.Geo.Lon
			hop.HasGeo = true
		}
		route.Hops = append(route.Hops, hop)
	}
	return route
}

// LoadTraceroutesDir reads every JSON-Lines file in dir, one route per line,
// grounded on the §6 traceroute directory format.
func LoadTraceroutesDir(dir string) ([]Route, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading traceroutes dir %q: %v", planerr.ErrInputMalformed, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var routes []Route
	for _, name := range names {
		path := filepath.Join(dir, name)
		rs, err := loadJSONLFile(path)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rs...)
	}
	return routes, nil
}

func loadJSONLFile(path string) ([]Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening traceroute file %q: %v", planerr.ErrInputMalformed, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	var routes []Route
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jl jsonlLine
		if err := json.Unmarshal(line, &jl); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", planerr.ErrInputMalformed, path, lineNo, err)
		}
		routes = append(routes, jl.toRoute())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %v", planerr.ErrInputMalformed, path, err)
	}
	return routes, nil
}

// legacyHop mirrors the per-IP map in a legacy single-source traceroute file
// (original models.py read_in_ip_map): top-level keys are IPs (plus the
// metadata keys "time", "node_id", "job_id" to skip), each value carries
// lon/lat/rtt/ttl.
type legacyHop struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	RTT float64 `json:"rtt"`
	TTL int     `json:"ttl"`
}

var legacyMetadataKeys = map[string]bool{"time": true, "node_id": true, "job_id": true}

// LoadLegacyTraceroute reads a single legacy-format traceroute file for one
// source. Go's JSON decoder does not keep a map's key order, so hops are
// ordered by ascending TTL; no other ordering key in the file is read.
func LoadLegacyTraceroute(path, source, destination string) (Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Route{}, fmt.Errorf("%w: reading legacy traceroute %q: %v", planerr.ErrInputMalformed, path, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Route{}, fmt.Errorf("%w: decoding legacy traceroute %q: %v", planerr.ErrInputMalformed, path, err)
	}

	hops := make([]Hop, 0, len(raw))
	for ip, msg := range raw {
		if legacyMetadataKeys[ip] {
			continue
		}
		var v legacyHop
		if err := json.Unmarshal(msg, &v); err != nil {
			return Route{}, fmt.Errorf("%w: decoding legacy traceroute %q hop %q: %v", planerr.ErrInputMalformed, path, ip, err)
		}
		hops = append(hops, Hop{
			IP:         ip,
			Lat:        v.Lat,
			Lon:        v.Lon,
			HasGeo:     true,
			TTL:        v.TTL,
			RTTSeconds: v.RTT,
		})
	}
	sort.SliceStable(hops, func(i, j int) bool { return hops[i].TTL < hops[j].TTL })

	return Route{
		RouteKey:    NewRouteKey(source, destination),
		Source:      source,
		Destination: destination,
		Hops:        hops,
	}, nil
}
