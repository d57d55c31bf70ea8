// Package model defines the compliance graph delivered by the assessment
// backend: standard/requirement nodes, status-colored edges, and the
// display-only attributes shown in the detail overlay.
//
// A Graph is an immutable snapshot. The backend replaces it wholesale when a
// new assessment completes; nothing in this package mutates a Graph after
// construction.
package model

import "strings"

// Kind distinguishes regulatory-standard nodes from the requirement clauses
// being assessed against them.
type Kind int

const (
	// KindStandard is a regulatory clause node (wire type "regulation").
	KindStandard Kind = iota
	// KindRequirement is a customer/project clause node (any other wire type).
	KindRequirement
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	if k == KindStandard {
		return "standard"
	}
	return "requirement"
}

// ParseKind maps the wire "type" field onto a Kind. The backend sends
// "regulation" for standards and "customer" for everything else; unknown
// values fall through to KindRequirement so a schema drift never drops nodes.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "regulation") {
		return KindStandard
	}
	return KindRequirement
}

// Status is the compliance verdict attached to requirement nodes and edges.
type Status string

const (
	StatusCompliant    Status = "COMPLIANT"
	StatusPartial      Status = "PARTIAL"
	StatusNonCompliant Status = "NON_COMPLIANT"
	StatusUnknown      Status = "UNKNOWN"
)

// ParseStatus normalizes a wire status string. Absent or unrecognized values
// map to StatusUnknown; the renderer treats Unknown like NonCompliant for
// coloring, which matches the backend's pessimistic default.
func ParseStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMPLIANT":
		return StatusCompliant
	case "PARTIAL":
		return StatusPartial
	case "NON_COMPLIANT":
		return StatusNonCompliant
	default:
		return StatusUnknown
	}
}

// Risk is the assessed risk level on a requirement node.
type Risk string

const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
	RiskLow    Risk = "LOW"
	RiskNone   Risk = "" // standards and unassessed nodes carry no risk
)

// ParseRisk normalizes a wire risk string.
func ParseRisk(s string) Risk {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return RiskHigh
	case "MEDIUM":
		return RiskMedium
	case "LOW":
		return RiskLow
	default:
		return RiskNone
	}
}

// Node is one graph node. ID is unique within a Graph and Kind never changes
// after construction. Everything past Status is display-only overlay detail.
type Node struct {
	ID     string
	Kind   Kind
	Label  string
	Status Status
	Risk   Risk

	// Overlay attributes, all optional.
	Reasoning string
	Evidence  string
	Excerpt   string // clause text excerpt (standards only on the wire)
	Page      int
	DocID     int
}

// Edge links a requirement node to the standard it was assessed against.
// Status is the edge's own verdict and colors the link independently of
// either endpoint.
type Edge struct {
	From   string
	To     string
	Status Status
}

// Graph is an ordered snapshot of nodes and edges.
type Graph struct {
	Nodes []Node
	Edges []Edge

	nodeByID map[string]*Node
}

// NewGraph builds a Graph and its id index from already-parsed nodes/edges.
// Callers normally go through DecodePayload instead.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.nodeByID = make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if _, dup := g.nodeByID[n.ID]; dup {
			continue // first occurrence wins; DecodePayload warns about dups
		}
		g.nodeByID[n.ID] = n
	}
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	if g == nil {
		return nil
	}
	return g.nodeByID[id]
}

// HasNode reports whether id names a node in this graph.
func (g *Graph) HasNode(id string) bool {
	return g.NodeByID(id) != nil
}

// DrawableEdges returns the edges whose endpoints both exist in the graph.
// Edges referencing a missing node are not drawable; they are skipped here
// rather than crashing the renderer (the decode step reports them).
func (g *Graph) DrawableEdges() []Edge {
	out := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if g.HasNode(e.From) && g.HasNode(e.To) {
			out = append(out, e)
		}
	}
	return out
}

// CountKind returns how many nodes have the given kind.
func (g *Graph) CountKind(k Kind) int {
	n := 0
	for i := range g.Nodes {
		if g.Nodes[i].Kind == k {
			n++
		}
	}
	return n
}

// Summary aggregates a graph into header-bar counts.
type Summary struct {
	Standards    int
	Requirements int
	Compliant    int
	Partial      int
	NonCompliant int
	Unknown      int
	HighRisk     int
}

// Summarize computes status counts over requirement nodes. Standard nodes
// have no verdict of their own and only contribute to the Standards count.
func (g *Graph) Summarize() Summary {
	var s Summary
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind == KindStandard {
			s.Standards++
			continue
		}
		s.Requirements++
		switch n.Status {
		case StatusCompliant:
			s.Compliant++
		case StatusPartial:
			s.Partial++
		case StatusNonCompliant:
			s.NonCompliant++
		default:
			s.Unknown++
		}
		if n.Risk == RiskHigh {
			s.HighRisk++
		}
	}
	return s
}
