// Package topology holds the static network description consumed by the
// planning core: nodes, hops, and routes built from traceroutes.
package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// NodeType is a closed enum for the three roles a node can play.
type NodeType string

const (
	NodeSource      NodeType = "source"
	NodeDestination NodeType = "destination"
	NodeDTN         NodeType = "dtn"
)

// PowerProfile describes a host's wattage range used by the simulator adapter
// to build a platform description (min/max, SimGrid-style "min:avg:max").
type PowerProfile struct {
	MinWatts float64
	MaxWatts float64
}

// Average returns the midpoint wattage between MinWatts and MaxWatts.
func (p PowerProfile) Average() float64 {
	return (p.MinWatts + p.MaxWatts) / 2
}

// Node is one endpoint or intermediate participant in the topology.
type Node struct {
	Name         string
	Type         NodeType
	CPUCores     int
	RAM          int64
	NICSpeedBps  int64
	Power        PowerProfile
	GFlops       float64
}

// rawNode mirrors nodes.json's on-disk shape (§6).
type rawNode struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	CPU      int    `json:"CPU"`
	TotalRAM int64  `json:"total_ram"`
	NICSpeed string `json:"NIC_SPEED"`
	GF       float64 `json:"gf"`
	Power    struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"power"`
}

// ParseNICSpeed converts a human-readable bandwidth string ("1Gbps", "100Mbps",
// "512Kbps", "bps") into bits per second. Grounded on the original
// parse_speed_to_bps (models.py): unit is determined by the presence of a
// G/M/K prefix before the trailing "bps" suffix, case-insensitively.
func ParseNICSpeed(speed string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(speed))
	if !strings.HasSuffix(s, "BPS") {
		return 0, fmt.Errorf("%w: NIC speed %q must end with \"bps\"", planerr.ErrInputMalformed, speed)
	}
	numeric := strings.TrimSuffix(s, "BPS")
	var multiplier float64 = 1
	switch {
	case strings.HasSuffix(numeric, "G"):
		multiplier = 1_000_000_000
		numeric = strings.TrimSuffix(numeric, "G")
	case strings.HasSuffix(numeric, "M"):
		multiplier = 1_000_000
		numeric = strings.TrimSuffix(numeric, "M")
	case strings.HasSuffix(numeric, "K"):
		multiplier = 1_000
		numeric = strings.TrimSuffix(numeric, "K")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(numeric), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: NIC speed %q has no numeric component: %v", planerr.ErrInputMalformed, speed, err)
	}
	return int64(value * multiplier), nil
}

func nodeTypeFromString(s string) (NodeType, error) {
	switch NodeType(strings.ToLower(s)) {
	case NodeSource, NodeDestination, NodeDTN:
		return NodeType(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("%w: unknown node type %q", planerr.ErrInputMalformed, s)
	}
}

func fromRaw(r rawNode) (Node, error) {
	typ, err := nodeTypeFromString(r.Type)
	if err != nil {
		return Node{}, err
	}
	nic, err := ParseNICSpeed(r.NICSpeed)
	if err != nil {
		return Node{}, fmt.Errorf("node %q: %w", r.Name, err)
	}
	return Node{
		Name:        r.Name,
		Type:        typ,
		CPUCores:    r.CPU,
		RAM:         r.TotalRAM,
		NICSpeedBps: nic,
		GFlops:      r.GF,
		Power: PowerProfile{
			MinWatts: r.Power.Min,
			MaxWatts: r.Power.Max,
		},
	}, nil
}
