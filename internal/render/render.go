// Package render turns the pure filter/layout/view output into concrete
// artifacts: a static SVG of the positioned subgraph and a standalone HTML
// page wrapping it. It consumes a View description (positions, opacities,
// colors) and owns no state of its own.
package render

import (
	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/detail"
	"github.com/policyposse/legisnet/internal/layout"
	"github.com/policyposse/legisnet/internal/subgraph"
	"github.com/policyposse/legisnet/internal/view"
)

// View is everything needed to draw one frame: the filtered subgraph, its
// layout, the highlight for the active focus, the optional detail panel,
// and the optional name-search match set.
type View struct {
	Title     string
	State     view.State
	Subgraph  *subgraph.Subgraph
	Layout    *layout.Result
	Highlight view.Highlight
	Detail    *detail.NodeDetail
	Matched   map[string]bool
}

// Compose runs layout, highlighting, and detail aggregation for a view
// state over an already-filtered subgraph.
func Compose(ds *dataset.Dataset, sg *subgraph.Subgraph, st view.State, query string) View {
	mode, focus := view.LayoutFor(st)
	v := View{
		Title:     "Legislative Collaboration Network",
		State:     st,
		Subgraph:  sg,
		Layout:    layout.Compute(sg.Nodes, mode, focus),
		Highlight: view.HighlightFor(st, sg, ds),
		Matched:   view.MatchNames(query, sg.Nodes),
	}
	if st.Level == view.LevelNode {
		v.Detail = detail.ForNode(st.Node, sg, ds)
	}
	return v
}

// nodeOpacity combines focus highlighting with search dimming. Search
// dimming wins: a non-matching node renders dimmed even when connected.
func (v View) nodeOpacity(id string) float64 {
	if v.Matched != nil && !v.Matched[id] {
		return view.DimmedNodeOpacity
	}
	return v.Highlight.NodeOpacity(id)
}
