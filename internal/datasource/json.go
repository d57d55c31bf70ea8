package datasource

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// validateJSON cheaply checks that a payload file is decodable JSON with a
// nodes array, without building a full model.Graph. Returns the node count.
func validateJSON(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var probe struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("not a graph payload: %w", err)
	}
	if probe.Nodes == nil {
		return 0, fmt.Errorf("payload has no nodes array")
	}
	return len(probe.Nodes), nil
}
