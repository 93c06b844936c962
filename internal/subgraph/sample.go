package subgraph

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// SampleStrategy selects how edge counts above MaxEdges are reduced.
type SampleStrategy string

// Available sampling strategies. Both reduce to exactly MaxEdges edges.
const (
	// SampleRandom keeps a uniform random subset (Fisher-Yates shuffle,
	// take prefix).
	SampleRandom SampleStrategy = "random"

	// SampleWeighted keeps the edges of the strongest pairs (stable sort
	// descending by pair strength, take prefix).
	SampleWeighted SampleStrategy = "weighted"
)

// ParseStrategy validates a strategy name from config or a query parameter.
// Empty input selects SampleRandom.
func ParseStrategy(s string) (SampleStrategy, error) {
	switch SampleStrategy(s) {
	case "", SampleRandom:
		return SampleRandom, nil
	case SampleWeighted:
		return SampleWeighted, nil
	default:
		return "", fmt.Errorf("invalid sampling strategy %q: must be random or weighted", s)
	}
}

// sampleEdges reduces edges to exactly MaxEdges using the given strategy.
// The input slice is not modified.
func sampleEdges(edges []Edge, strategy SampleStrategy, r *rand.Rand) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)

	switch strategy {
	case SampleWeighted:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PairCount > out[j].PairCount })
	default:
		if r == nil {
			r = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}

	return out[:MaxEdges]
}
