// Package subgraph derives bounded, renderable subgraphs from the full
// collaboration dataset. Filtering gates edges by aggregate pair strength
// and optionally by policy area, then samples the survivors down to a fixed
// cap so rendering cost stays bounded.
package subgraph

import (
	"sort"

	"github.com/policyposse/legisnet/internal/dataset"
)

// MaxEdges is the sampling cap: the maximum number of edges a filtered
// subgraph may carry.
const MaxEdges = 4000

// Edge is one surviving collaboration record. PairCount is the aggregate
// strength of its (unordered) legislator pair across all bills; every edge
// of a pair that clears the threshold is kept individually.
type Edge struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	BillNumber string `json:"bill_number"`
	PairCount  int    `json:"pair_count"`
}

// Counts summarizes a filtered subgraph for UI disclosure. Connections is
// the pre-sampling edge count so callers can render "showing N of M".
type Counts struct {
	Legislators int  `json:"legislators"`
	Connections int  `json:"connections"`
	Bills       int  `json:"bills"`
	Sampled     bool `json:"sampled"`
}

// Subgraph is the filtered node/edge set for one (threshold, policy)
// combination. It is rebuilt from scratch on every filter call and never
// mutated in place.
type Subgraph struct {
	Nodes  []dataset.Legislator `json:"nodes"`
	Edges  []Edge               `json:"edges"`
	Counts Counts               `json:"counts"`

	// DroppedReferences counts collaboration records discarded because an
	// endpoint id was missing from the legislator table. Missing references
	// degrade to dropped edges, never to a fatal error.
	DroppedReferences int `json:"-"`

	pairCounts map[string]int
	adjacency  map[string]map[string]bool
	nodeIDs    map[string]bool
}

// PairKey canonicalizes an unordered legislator pair: (A,B) and (B,A) map
// to the same key.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Strength returns the collaboration count for the pair (a, b) within this
// subgraph's restricted collaboration set.
func (g *Subgraph) Strength(a, b string) int {
	return g.pairCounts[PairKey(a, b)]
}

// HasNode reports whether the node id survived filtering.
func (g *Subgraph) HasNode(id string) bool {
	return g.nodeIDs[id]
}

// Neighbors returns the ids of nodes sharing at least one surviving edge
// with the given node, sorted for determinism.
func (g *Subgraph) Neighbors(id string) []string {
	adj := g.adjacency[id]
	if len(adj) == 0 {
		return nil
	}
	out := make([]string, 0, len(adj))
	for n := range adj {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
