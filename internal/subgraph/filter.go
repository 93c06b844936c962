package subgraph

import (
	"math/rand"
	"sort"

	"github.com/policyposse/legisnet/internal/dataset"
)

// PolicyAll selects all policies (no policy restriction).
const PolicyAll = "all"

// Threshold bounds for the minimum-collaboration filter.
const (
	MinThreshold     = 1
	MaxThreshold     = 20
	DefaultThreshold = 10
)

// Options controls a filter pass.
type Options struct {
	// MinCollaborations is the minimum aggregate pair strength an edge's
	// legislator pair must reach for the edge to survive.
	MinCollaborations int

	// PolicyID restricts candidate bills to one policy area. "all" or ""
	// means no restriction. Compared as a string to tolerate feeds that mix
	// numeric and string ids.
	PolicyID string

	// Strategy selects how edges are reduced when they exceed MaxEdges.
	Strategy SampleStrategy

	// Rand is the randomness source for SampleRandom. Nil means a
	// time-seeded source; tests pass a fixed seed for reproducibility.
	Rand *rand.Rand
}

// ClampThreshold forces a threshold into the valid 1-20 range, substituting
// the default for non-positive input.
func ClampThreshold(n int) int {
	if n <= 0 {
		return DefaultThreshold
	}
	if n < MinThreshold {
		return MinThreshold
	}
	if n > MaxThreshold {
		return MaxThreshold
	}
	return n
}

// Filter derives a bounded subgraph from the dataset. A combination that
// matches nothing yields an empty subgraph with zero counts, not an error.
func Filter(ds *dataset.Dataset, opts Options) *Subgraph {
	g := &Subgraph{
		pairCounts: make(map[string]int),
		adjacency:  make(map[string]map[string]bool),
		nodeIDs:    make(map[string]bool),
	}

	validBills := validBillSet(ds, opts.PolicyID)
	g.Counts.Bills = len(validBills)

	// Restrict collaborations to valid bills with resolvable endpoints,
	// counting pair strength over the survivors. Records referencing an
	// unknown legislator are dropped here so they can never dangle.
	var candidates []dataset.Collaboration
	for _, c := range ds.Collaborations {
		if !validBills[c.BillNumber] {
			continue
		}
		if _, ok := ds.Legislator(c.Source); !ok {
			g.DroppedReferences++
			continue
		}
		if _, ok := ds.Legislator(c.Target); !ok {
			g.DroppedReferences++
			continue
		}
		candidates = append(candidates, c)
		g.pairCounts[PairKey(c.Source, c.Target)]++
	}

	// Strength filter on the pair, not the individual edge: every per-bill
	// edge of a qualifying pair is kept.
	min := opts.MinCollaborations
	if min < MinThreshold {
		min = MinThreshold
	}
	edges := make([]Edge, 0, len(candidates))
	for _, c := range candidates {
		count := g.pairCounts[PairKey(c.Source, c.Target)]
		if count < min {
			continue
		}
		edges = append(edges, Edge{
			Source:     c.Source,
			Target:     c.Target,
			BillNumber: c.BillNumber,
			PairCount:  count,
		})
	}

	g.Counts.Connections = len(edges)
	if len(edges) > MaxEdges {
		edges = sampleEdges(edges, opts.Strategy, opts.Rand)
		g.Counts.Sampled = true
	}
	g.Edges = edges

	g.materializeNodes(ds)
	g.Counts.Legislators = len(g.Nodes)
	return g
}

// validBillSet builds the set of bill numbers passing the policy filter.
func validBillSet(ds *dataset.Dataset, policyID string) map[string]bool {
	all := policyID == "" || policyID == PolicyAll
	bills := make(map[string]bool)
	for _, b := range ds.Bills {
		if all || string(b.PolicyID) == policyID {
			bills[b.BillNumber] = true
		}
	}
	return bills
}

// materializeNodes resolves the union of surviving edge endpoints against
// the legislator table and records adjacency. Every node is an endpoint of
// at least one surviving edge.
func (g *Subgraph) materializeNodes(ds *dataset.Dataset) {
	for _, e := range g.Edges {
		g.addAdjacency(e.Source, e.Target)
		for _, id := range []string{e.Source, e.Target} {
			if g.nodeIDs[id] {
				continue
			}
			// Endpoints were validated during restriction, so the lookup
			// cannot miss here.
			leg, ok := ds.Legislator(id)
			if !ok {
				continue
			}
			g.nodeIDs[id] = true
			g.Nodes = append(g.Nodes, leg)
		}
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
}

func (g *Subgraph) addAdjacency(a, b string) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[string]bool)
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[string]bool)
	}
	g.adjacency[a][b] = true
	g.adjacency[b][a] = true
}
