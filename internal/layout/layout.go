// Package layout assigns deterministic 2D coordinates to subgraph nodes
// under the three view modes (overview ring, state-focus inner circle,
// node-focus centered) and computes curved edge paths between positioned
// nodes. All position math is pure: the same nodes, mode, and focus always
// produce the same coordinates.
package layout

import (
	"math"
	"sort"

	"github.com/policyposse/legisnet/internal/dataset"
)

// Mode is a layout scheme matching one navigation level.
type Mode int

// Layout modes.
const (
	ModeOverview Mode = iota
	ModeStateFocus
	ModeNodeFocus
)

// Geometry constants. Radius is the outer ring radius; the state-focus
// inner circle sits at half of it.
const (
	Radius           = 600.0
	InnerRadiusRatio = 0.5
	GapAngle         = 0.04 // radians between adjacent state arcs
	LabelOffset      = 40.0

	// startAngle places the first state at twelve o'clock.
	startAngle = -math.Pi / 2
)

// Focus identifies what a non-overview layout centers on.
type Focus struct {
	State  string
	NodeID string
}

// Point is a 2D coordinate with the graph centered on the origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Label is a state label positioned outside the ring at its arc midpoint.
type Label struct {
	State string  `json:"state"`
	Angle float64 `json:"angle"`
	Point Point   `json:"point"`
}

// Result holds positioned nodes and labels for one layout pass.
type Result struct {
	Mode      Mode
	Focus     Focus
	Positions map[string]Point
	Labels    []Label

	// inner marks nodes placed on the state-focus inner circle (or at the
	// origin). Edges between two inner nodes curve tighter.
	inner map[string]bool
}

// Position returns a node's coordinates, or false when the node is not in
// the positioned set.
func (r *Result) Position(id string) (Point, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// polar converts an angle and radius to Cartesian coordinates.
func polar(angle, radius float64) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Compute lays out nodes for the given mode and focus. Unknown focus values
// degrade to the overview scheme rather than failing.
func Compute(nodes []dataset.Legislator, mode Mode, focus Focus) *Result {
	res := &Result{
		Mode:      mode,
		Focus:     focus,
		Positions: make(map[string]Point, len(nodes)),
		inner:     make(map[string]bool),
	}

	switch mode {
	case ModeStateFocus, ModeNodeFocus:
		if !hasState(nodes, focus.State) {
			res.Mode = ModeOverview
			computeOverview(res, nodes)
			return res
		}
		computeFocused(res, nodes, focus.State)
		if mode == ModeNodeFocus {
			if _, ok := res.Positions[focus.NodeID]; ok {
				res.Positions[focus.NodeID] = Point{}
				res.inner[focus.NodeID] = true
			}
		}
	default:
		computeOverview(res, nodes)
	}

	return res
}

// computeOverview groups nodes by state on the outer ring. Each state gets
// an equal angular share of the circle minus the inter-state gaps; nodes are
// spaced evenly within their state's arc.
func computeOverview(res *Result, nodes []dataset.Legislator) {
	byState := groupByState(nodes)
	states := sortedStateKeys(byState)
	if len(states) == 0 {
		return
	}

	arcWidth := (2*math.Pi - float64(len(states))*GapAngle) / float64(len(states))
	for i, state := range states {
		arcStart := startAngle + float64(i)*(arcWidth+GapAngle)
		members := byState[state]
		step := arcWidth / float64(len(members))
		for j, leg := range members {
			angle := arcStart + step*(float64(j)+0.5)
			res.Positions[leg.ID] = polar(angle, Radius)
		}

		mid := arcStart + arcWidth/2
		res.Labels = append(res.Labels, Label{
			State: state,
			Angle: mid,
			Point: polar(mid, Radius+LabelOffset),
		})
	}
}

// computeFocused places the focused state's nodes on the inner circle and
// collapses every other state to a single point on the outer ring. The ring
// excludes the focused state.
func computeFocused(res *Result, nodes []dataset.Legislator, focusState string) {
	byState := groupByState(nodes)

	focused := byState[focusState]
	inner := Radius * InnerRadiusRatio
	for j, leg := range focused {
		angle := startAngle + 2*math.Pi*float64(j)/float64(len(focused))
		res.Positions[leg.ID] = polar(angle, inner)
		res.inner[leg.ID] = true
	}

	var others []string
	for _, state := range sortedStateKeys(byState) {
		if state != focusState {
			others = append(others, state)
		}
	}
	for i, state := range others {
		angle := startAngle + 2*math.Pi*float64(i)/float64(len(others))
		point := polar(angle, Radius)
		for _, leg := range byState[state] {
			res.Positions[leg.ID] = point
		}
		res.Labels = append(res.Labels, Label{
			State: state,
			Angle: angle,
			Point: polar(angle, Radius+LabelOffset),
		})
	}
}

// groupByState buckets nodes by state, each bucket sorted by id so layouts
// are deterministic regardless of input order.
func groupByState(nodes []dataset.Legislator) map[string][]dataset.Legislator {
	byState := make(map[string][]dataset.Legislator)
	for _, leg := range nodes {
		byState[leg.State] = append(byState[leg.State], leg)
	}
	for _, members := range byState {
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	}
	return byState
}

func sortedStateKeys(byState map[string][]dataset.Legislator) []string {
	states := make([]string, 0, len(byState))
	for s := range byState {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

func hasState(nodes []dataset.Legislator, state string) bool {
	if state == "" {
		return false
	}
	for _, leg := range nodes {
		if leg.State == state {
			return true
		}
	}
	return false
}
