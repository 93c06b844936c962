package view

import (
	"testing"

	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/layout"
)

const viewFeed = `{
	"legislators": [
		{"id": "ca1", "name": "Alice Anders", "party": "D", "state": "CA"},
		{"id": "ca2", "name": "Bob Baker", "party": "R", "state": "CA"},
		{"id": "ny1", "name": "Cora Cruz", "party": "I", "state": "NY"}
	],
	"bills": [
		{"bill_number": "1", "title": "Bill One", "policy_id": "12", "policy_name": "Health", "latest_action_date": "2022-01-01"}
	],
	"collaborations": [
		{"source": "ca1", "target": "ca2", "bill_number": "1"},
		{"source": "ca1", "target": "ny1", "bill_number": "1"}
	]
}`

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse([]byte(viewFeed))
	if err != nil {
		t.Fatalf("parsing test dataset: %v", err)
	}
	return ds
}

func TestNext_TransitionTable(t *testing.T) {
	ds := testDataset(t)

	tests := []struct {
		name string
		from State
		ev   Event
		want State
	}{
		{"overview node click focuses its state", Overview(), ClickNode{"ca1"}, StateFocus("CA")},
		{"overview label click focuses state", Overview(), ClickLabel{"NY"}, StateFocus("NY")},
		{"overview background is a no-op", Overview(), ClickBackground{}, Overview()},
		{"state focus in-state node descends", StateFocus("CA"), ClickNode{"ca1"}, NodeFocus("ca1", "CA")},
		{"state focus out-of-state node switches state", StateFocus("CA"), ClickNode{"ny1"}, StateFocus("NY")},
		{"state focus other label switches state", StateFocus("CA"), ClickLabel{"NY"}, StateFocus("NY")},
		{"state focus same label is a no-op", StateFocus("CA"), ClickLabel{"CA"}, StateFocus("CA")},
		{"state focus background resets to overview", StateFocus("CA"), ClickBackground{}, Overview()},
		{"node focus same node steps out", NodeFocus("ca1", "CA"), ClickNode{"ca1"}, StateFocus("CA")},
		{"node focus sibling node refocuses", NodeFocus("ca1", "CA"), ClickNode{"ca2"}, NodeFocus("ca2", "CA")},
		{"node focus other-state node switches state", NodeFocus("ca1", "CA"), ClickNode{"ny1"}, StateFocus("NY")},
		{"node focus background lands on parent state", NodeFocus("ca1", "CA"), ClickBackground{}, StateFocus("CA")},
		{"unknown node is a no-op", StateFocus("CA"), ClickNode{"ghost"}, StateFocus("CA")},
		{"empty label is a no-op", StateFocus("CA"), ClickLabel{""}, StateFocus("CA")},
		{"unknown state label is a no-op", StateFocus("CA"), ClickLabel{"ZZ"}, StateFocus("CA")},
		{"unknown state label from overview is a no-op", Overview(), ClickLabel{"ZZ"}, Overview()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.from, tt.ev, ds); got != tt.want {
				t.Errorf("Next(%+v, %+v) = %+v, want %+v", tt.from, tt.ev, got, tt.want)
			}
		})
	}
}

// Leaving a node focus must always land on the state focus it came from,
// never directly on the overview.
func TestNext_NodeFocusNeverResetsToOverview(t *testing.T) {
	ds := testDataset(t)

	from := NodeFocus("ca1", "CA")
	events := []Event{ClickBackground{}, ClickNode{"ca1"}}
	for _, ev := range events {
		got := Next(from, ev, ds)
		if got.Level == LevelOverview {
			t.Errorf("Next(NodeFocus, %+v) reached overview directly", ev)
		}
		if got.Level == LevelState && got.State != "CA" {
			t.Errorf("Next(NodeFocus, %+v) = %+v, want StateFocus(CA)", ev, got)
		}
	}
}

// NodeFocus is only reachable through a StateFocus matching the node's
// state: descending from elsewhere first switches states.
func TestNext_NodeFocusReachability(t *testing.T) {
	ds := testDataset(t)

	// From overview, a node click never reaches node focus directly.
	got := Next(Overview(), ClickNode{"ca1"}, ds)
	if got.Level != LevelState {
		t.Fatalf("overview node click = %+v, want state focus", got)
	}

	// From the wrong state focus, a node click switches state first.
	got = Next(StateFocus("NY"), ClickNode{"ca1"}, ds)
	if got != StateFocus("CA") {
		t.Fatalf("wrong-state node click = %+v, want StateFocus(CA)", got)
	}

	// Only the matching state focus descends.
	got = Next(StateFocus("CA"), ClickNode{"ca1"}, ds)
	if got != NodeFocus("ca1", "CA") {
		t.Fatalf("in-state node click = %+v, want NodeFocus", got)
	}
	if got.ParentState != "CA" {
		t.Errorf("ParentState = %q, want CA", got.ParentState)
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		name      string
		st        State
		wantMode  layout.Mode
		wantFocus layout.Focus
	}{
		{"overview", Overview(), layout.ModeOverview, layout.Focus{}},
		{"state", StateFocus("CA"), layout.ModeStateFocus, layout.Focus{State: "CA"}},
		{"node", NodeFocus("ca1", "CA"), layout.ModeNodeFocus, layout.Focus{State: "CA", NodeID: "ca1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, focus := LayoutFor(tt.st)
			if mode != tt.wantMode || focus != tt.wantFocus {
				t.Errorf("LayoutFor(%+v) = %v, %+v; want %v, %+v", tt.st, mode, focus, tt.wantMode, tt.wantFocus)
			}
		})
	}
}
