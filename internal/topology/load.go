package topology

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jgoldverg/green-transfer-scheduler/internal/planerr"
)

// LoadNodes reads nodes.json (array of rawNode) and returns the validated
// Node set, grounded on the original read_in_node_file (models.py).
func LoadNodes(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading nodes file %q: %v", planerr.ErrInputMalformed, path, err)
	}
	var raws []rawNode
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: decoding nodes file %q: %v", planerr.ErrInputMalformed, path, err)
	}
	nodes := make([]Node, 0, len(raws))
	destinations := 0
	for _, r := range raws {
		n, err := fromRaw(r)
		if err != nil {
			return nil, err
		}
		if n.Type == NodeDestination {
			destinations++
		}
		nodes = append(nodes, n)
	}
	if destinations != 1 {
		return nil, fmt.Errorf("%w: expected exactly one destination node, found %d", planerr.ErrInputMalformed, destinations)
	}
	return nodes, nil
}

// NodesByName indexes a node slice for O(1) lookup by name.
func NodesByName(nodes []Node) map[string]Node {
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byName[n.Name] = n
	}
	return byName
}
