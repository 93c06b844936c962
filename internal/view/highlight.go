package view

import (
	"strings"

	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/subgraph"
)

// Opacity defaults shared by the highlight model and the renderer. Dimmed
// nodes stay faintly visible; non-connected edges are fully hidden.
const (
	FullOpacity        = 1.0
	DimmedNodeOpacity  = 0.2
	DefaultEdgeOpacity = 0.15
	HiddenEdgeOpacity  = 0.0
)

// DefaultEdgeColor is the neutral edge stroke when no focus applies.
const DefaultEdgeColor = "#999999"

// PartyColor maps a party to its display color.
func PartyColor(p dataset.Party) string {
	switch p {
	case dataset.PartyDemocrat:
		return "#2166ac"
	case dataset.PartyRepublican:
		return "#b2182b"
	case dataset.PartyIndependent:
		return "#762a83"
	default:
		return "#636363"
	}
}

// EdgeEmphasis is the rendering instruction for one edge.
type EdgeEmphasis struct {
	Opacity float64
	Color   string
}

// Highlight describes which nodes and edges are emphasized for the current
// focus. Edges is parallel to the subgraph's edge slice. A neutral
// highlight dims nothing and draws every edge at the low default opacity.
type Highlight struct {
	Neutral   bool
	Connected map[string]bool
	Edges     []EdgeEmphasis
}

// NodeOpacity returns the opacity a node renders at under this highlight.
func (h Highlight) NodeOpacity(id string) float64 {
	if h.Neutral || h.Connected[id] {
		return FullOpacity
	}
	return DimmedNodeOpacity
}

// Neutral returns the no-focus highlight for a subgraph.
func Neutral(sg *subgraph.Subgraph) Highlight {
	edges := make([]EdgeEmphasis, len(sg.Edges))
	for i := range edges {
		edges[i] = EdgeEmphasis{Opacity: DefaultEdgeOpacity, Color: DefaultEdgeColor}
	}
	return Highlight{Neutral: true, Edges: edges}
}

// HighlightFor recomputes the highlight sets for a view state. State focus
// emphasizes the state's nodes plus anything sharing an edge with them;
// node focus emphasizes the node plus its direct neighbors. Connected edges
// take the party color of their non-focus endpoint.
func HighlightFor(s State, sg *subgraph.Subgraph, ds *dataset.Dataset) Highlight {
	switch s.Level {
	case LevelState:
		return stateHighlight(s.State, sg, ds)
	case LevelNode:
		return nodeHighlight(s.Node, sg, ds)
	default:
		return Neutral(sg)
	}
}

func stateHighlight(state string, sg *subgraph.Subgraph, ds *dataset.Dataset) Highlight {
	h := Highlight{
		Connected: make(map[string]bool),
		Edges:     make([]EdgeEmphasis, len(sg.Edges)),
	}

	inState := make(map[string]bool)
	for _, n := range sg.Nodes {
		if n.State == state {
			inState[n.ID] = true
			h.Connected[n.ID] = true
		}
	}

	for i, e := range sg.Edges {
		if !inState[e.Source] && !inState[e.Target] {
			h.Edges[i] = EdgeEmphasis{Opacity: HiddenEdgeOpacity}
			continue
		}
		h.Connected[e.Source] = true
		h.Connected[e.Target] = true

		// Color by the endpoint outside the focused state; for in-state
		// pairs the target decides.
		colorEnd := e.Target
		if inState[e.Target] && !inState[e.Source] {
			colorEnd = e.Source
		}
		h.Edges[i] = EdgeEmphasis{Opacity: FullOpacity, Color: endpointColor(colorEnd, ds)}
	}
	return h
}

func nodeHighlight(nodeID string, sg *subgraph.Subgraph, ds *dataset.Dataset) Highlight {
	h := Highlight{
		Connected: map[string]bool{nodeID: true},
		Edges:     make([]EdgeEmphasis, len(sg.Edges)),
	}

	for i, e := range sg.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			h.Edges[i] = EdgeEmphasis{Opacity: HiddenEdgeOpacity}
			continue
		}
		other := e.Target
		if other == nodeID {
			other = e.Source
		}
		h.Connected[other] = true
		h.Edges[i] = EdgeEmphasis{Opacity: FullOpacity, Color: endpointColor(other, ds)}
	}
	return h
}

func endpointColor(id string, ds *dataset.Dataset) string {
	if leg, ok := ds.Legislator(id); ok {
		return PartyColor(leg.Party)
	}
	return DefaultEdgeColor
}

// Selection is the toggle-selection overlay, tracked separately from the
// focus state. It is available at any navigation level.
type Selection struct {
	Node string
}

// Toggle selects a node, or clears the selection when the node is already
// selected. Toggling twice always returns to the empty selection.
func (s Selection) Toggle(nodeID string) Selection {
	if s.Node == nodeID {
		return Selection{}
	}
	return Selection{Node: nodeID}
}

// SelectionHighlight dims all non-neighbors of the selected node regardless
// of the current focus level. An empty selection (or a selected node absent
// from the subgraph) yields the neutral highlight, restoring all defaults.
func SelectionHighlight(sel Selection, sg *subgraph.Subgraph, ds *dataset.Dataset) Highlight {
	if sel.Node == "" || !sg.HasNode(sel.Node) {
		return Neutral(sg)
	}
	return nodeHighlight(sel.Node, sg, ds)
}

// MatchNames returns the set of node ids whose legislator name contains the
// query, case-insensitively. A nil result means an empty query: nothing
// should be dimmed.
func MatchNames(query string, nodes []dataset.Legislator) map[string]bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	query = strings.ToLower(query)
	matched := make(map[string]bool)
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Name), query) {
			matched[n.ID] = true
		}
	}
	return matched
}
