package model

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// wireNode mirrors the backend's /graph payload node. The schema is owned by
// the assessment backend; field names here must not drift from it.
type wireNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	Risk      string `json:"risk,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Evidence  string `json:"evidence,omitempty"`
	Text      string `json:"text,omitempty"`
	Page      int    `json:"page,omitempty"`
	DocID     int    `json:"doc_id,omitempty"`
}

type wireEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status,omitempty"`
}

type wirePayload struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

// DecodePayload parses a backend graph payload. Malformed JSON is an error;
// integrity problems (duplicate node ids, edges referencing missing nodes)
// degrade to warnings so a partially-bad assessment still renders.
func DecodePayload(data []byte) (*Graph, []string, error) {
	var p wirePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("parsing graph payload: %w", err)
	}

	var warnings []string

	nodes := make([]Node, 0, len(p.Nodes))
	seen := make(map[string]bool, len(p.Nodes))
	for _, wn := range p.Nodes {
		if wn.ID == "" {
			warnings = append(warnings, "skipping node with empty id")
			continue
		}
		if seen[wn.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate node id %q: keeping first occurrence", wn.ID))
			continue
		}
		seen[wn.ID] = true
		nodes = append(nodes, Node{
			ID:        wn.ID,
			Kind:      ParseKind(wn.Type),
			Label:     wn.Label,
			Status:    ParseStatus(wn.Status),
			Risk:      ParseRisk(wn.Risk),
			Reasoning: wn.Reasoning,
			Evidence:  wn.Evidence,
			Excerpt:   wn.Text,
			Page:      wn.Page,
			DocID:     wn.DocID,
		})
	}

	edges := make([]Edge, 0, len(p.Edges))
	for _, we := range p.Edges {
		e := Edge{From: we.From, To: we.To, Status: ParseStatus(we.Status)}
		if !seen[e.From] || !seen[e.To] {
			warnings = append(warnings, fmt.Sprintf("edge %s -> %s references a missing node: not drawable", e.From, e.To))
		}
		edges = append(edges, e)
	}

	return NewGraph(nodes, edges), warnings, nil
}

// LoadPayloadFile reads and decodes a graph payload from a JSON file.
func LoadPayloadFile(path string) (*Graph, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading graph payload: %w", err)
	}
	return DecodePayload(data)
}
