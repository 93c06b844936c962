// Package view models the three-level navigation of the collaboration
// network (overview, state focus, node focus) as a single immutable state
// value, plus the highlight/dim computation for the active focus. Every
// transition takes a State and returns the next one; there is no shared
// mutable view state.
package view

import (
	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/layout"
)

// Level is the navigation depth.
type Level int

// Navigation levels.
const (
	LevelOverview Level = iota
	LevelState
	LevelNode
)

// State is the authoritative view state. Node focus is always nested under
// the state the node belongs to: ParentState records the state focus a node
// focus was entered from, and leaving a node focus lands there, never
// directly on the overview.
type State struct {
	Level       Level
	State       string
	Node        string
	ParentState string
}

// Overview returns the initial view state.
func Overview() State {
	return State{Level: LevelOverview}
}

// StateFocus returns a state-focus view for the given state code.
func StateFocus(state string) State {
	return State{Level: LevelState, State: state}
}

// NodeFocus returns a node-focus view nested under the node's state.
func NodeFocus(nodeID, parentState string) State {
	return State{Level: LevelNode, Node: nodeID, State: parentState, ParentState: parentState}
}

// Event is a user interaction that may drive a transition.
type Event interface {
	isEvent()
}

// ClickNode is a click on a legislator node.
type ClickNode struct{ ID string }

// ClickLabel is a click on a state label.
type ClickLabel struct{ State string }

// ClickBackground is a click on empty canvas.
type ClickBackground struct{}

func (ClickNode) isEvent()       {}
func (ClickLabel) isEvent()      {}
func (ClickBackground) isEvent() {}

// Next applies one transition. Events referencing unknown nodes or states
// are no-ops: post-load interaction errors degrade gracefully instead of
// propagating.
func Next(s State, ev Event, ds *dataset.Dataset) State {
	switch e := ev.(type) {
	case ClickNode:
		leg, ok := ds.Legislator(e.ID)
		if !ok {
			return s
		}
		return nextForNode(s, leg)
	case ClickLabel:
		if !ds.HasState(e.State) {
			return s
		}
		if s.Level == LevelState && s.State == e.State {
			return s
		}
		return StateFocus(e.State)
	case ClickBackground:
		switch s.Level {
		case LevelNode:
			return StateFocus(s.ParentState)
		case LevelState:
			return Overview()
		default:
			return s
		}
	}
	return s
}

// nextForNode handles node activation at each level.
func nextForNode(s State, leg dataset.Legislator) State {
	switch s.Level {
	case LevelOverview:
		return StateFocus(leg.State)
	case LevelState:
		if leg.State == s.State {
			return NodeFocus(leg.ID, s.State)
		}
		return StateFocus(leg.State)
	case LevelNode:
		if leg.ID == s.Node {
			// Clicking the focused node again steps back out.
			return StateFocus(s.ParentState)
		}
		if leg.State == s.ParentState {
			return NodeFocus(leg.ID, s.ParentState)
		}
		return StateFocus(leg.State)
	}
	return s
}

// LayoutFor maps a view state to the layout mode and focus that renders it.
func LayoutFor(s State) (layout.Mode, layout.Focus) {
	switch s.Level {
	case LevelState:
		return layout.ModeStateFocus, layout.Focus{State: s.State}
	case LevelNode:
		return layout.ModeNodeFocus, layout.Focus{State: s.ParentState, NodeID: s.Node}
	default:
		return layout.ModeOverview, layout.Focus{}
	}
}
