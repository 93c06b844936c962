// Package detail aggregates the per-legislator panel shown when a node is
// focused or selected: connected-legislator count, the bills behind the
// node's edges, and the top policy areas across those bills.
package detail

import (
	"sort"

	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/subgraph"
)

// Display limits for the detail panel.
const (
	MaxBills    = 25
	TopPolicies = 3

	// Titles longer than TitleTruncateAt characters are cut at
	// TitleCutAt characters plus an ellipsis. The two values deliberately
	// differ: titles between the two lengths keep their full text and only
	// gain the ellipsis.
	TitleTruncateAt = 100
	TitleCutAt      = 120
)

// BillSummary is one bill row in the detail panel.
type BillSummary struct {
	BillNumber       string `json:"bill_number"`
	Title            string `json:"title"`
	PolicyName       string `json:"policy_name,omitempty"`
	LatestActionDate string `json:"latest_action_date,omitempty"`
}

// PolicyCount is a policy name with its frequency across the node's bills.
type PolicyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NodeDetail is the aggregated panel content for one node.
type NodeDetail struct {
	Node                 dataset.Legislator `json:"node"`
	ConnectedLegislators int                `json:"connected_legislators"`
	TotalBills           int                `json:"total_bills"`
	Bills                []BillSummary      `json:"bills"`
	TopPolicies          []PolicyCount      `json:"top_policies"`
}

// ForNode aggregates detail for a node from the surviving edges. Bills are
// deduplicated by number in edge order; the displayed list is capped at
// MaxBills. Policy frequencies are tallied once per distinct bill, and the
// top three surface with ties broken by first-encountered order. The
// connected count excludes the node itself. Returns nil when the node is
// not in the subgraph.
func ForNode(nodeID string, sg *subgraph.Subgraph, ds *dataset.Dataset) *NodeDetail {
	leg, ok := ds.Legislator(nodeID)
	if !ok || !sg.HasNode(nodeID) {
		return nil
	}

	nd := &NodeDetail{Node: leg}

	seenBills := make(map[string]bool)
	connected := make(map[string]bool)
	policyCounts := make(map[string]int)
	var policyOrder []string

	for _, e := range sg.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			continue
		}
		other := e.Target
		if other == nodeID {
			other = e.Source
		}
		connected[other] = true

		if seenBills[e.BillNumber] {
			continue
		}
		seenBills[e.BillNumber] = true
		nd.TotalBills++

		summary := BillSummary{BillNumber: e.BillNumber}
		if bill, ok := ds.Bill(e.BillNumber); ok {
			summary.Title = TruncateTitle(bill.Title)
			summary.PolicyName = bill.PolicyName
			summary.LatestActionDate = bill.LatestActionDate
			if bill.PolicyName != "" {
				if _, seen := policyCounts[bill.PolicyName]; !seen {
					policyOrder = append(policyOrder, bill.PolicyName)
				}
				policyCounts[bill.PolicyName]++
			}
		}
		if len(nd.Bills) < MaxBills {
			nd.Bills = append(nd.Bills, summary)
		}
	}

	nd.ConnectedLegislators = len(connected)
	nd.TopPolicies = topPolicies(policyOrder, policyCounts)
	return nd
}

// topPolicies ranks policies by frequency, preserving first-encountered
// order among equal counts, and keeps the top three.
func topPolicies(order []string, counts map[string]int) []PolicyCount {
	ranked := make([]PolicyCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, PolicyCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > TopPolicies {
		ranked = ranked[:TopPolicies]
	}
	return ranked
}

// TruncateTitle applies the panel's title truncation rule. Lengths are
// counted in runes so multi-byte names are never split.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= TitleTruncateAt {
		return title
	}
	if len(runes) > TitleCutAt {
		runes = runes[:TitleCutAt]
	}
	return string(runes) + "..."
}
