package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
)

// requiredKeys are the top-level keys a feed must carry. Policies and
// metadata are optional; both can be derived from the bill table.
var requiredKeys = []string{"legislators", "bills", "collaborations"}

// rawFeed mirrors the wire shape of /api/network-data.
type rawFeed struct {
	Legislators    []Legislator    `json:"legislators"`
	Bills          []Bill          `json:"bills"`
	Collaborations []Collaboration `json:"collaborations"`
	Policies       []Policy        `json:"policies"`
	Metadata       *Metadata       `json:"metadata"`
}

// Parse decodes a network-data JSON document into a Dataset. Missing
// required top-level keys yield a *ShapeError; malformed JSON is wrapped.
// Duplicate legislator ids and bill numbers are deduplicated, first seen
// wins.
func Parse(data []byte) (*Dataset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &ShapeError{Missing: missing}
	}

	var feed rawFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	ds := &Dataset{
		Collaborations: feed.Collaborations,
		Policies:       feed.Policies,
		legislatorByID: make(map[string]int),
		billByNumber:   make(map[string]int),
		policyNameByID: make(map[PolicyID]string),
		states:         make(map[string]bool),
	}

	// Deduplicate legislators, first seen wins.
	for _, leg := range feed.Legislators {
		if _, seen := ds.legislatorByID[leg.ID]; seen {
			continue
		}
		ds.legislatorByID[leg.ID] = len(ds.Legislators)
		ds.Legislators = append(ds.Legislators, leg)
		ds.states[leg.State] = true
	}

	// Deduplicate bills by number, first seen wins.
	for _, b := range feed.Bills {
		if _, seen := ds.billByNumber[b.BillNumber]; seen {
			continue
		}
		ds.billByNumber[b.BillNumber] = len(ds.Bills)
		ds.Bills = append(ds.Bills, b)
	}

	if len(ds.Policies) == 0 {
		ds.Policies = derivePolicies(ds.Bills)
	}
	for _, p := range ds.Policies {
		if _, seen := ds.policyNameByID[p.ID]; !seen {
			ds.policyNameByID[p.ID] = p.Name
		}
	}

	if feed.Metadata != nil {
		ds.Metadata = *feed.Metadata
	} else {
		ds.Metadata = deriveMetadata(ds)
	}

	return ds, nil
}

// derivePolicies reconstructs the policy table from the bill table when the
// feed omits it.
func derivePolicies(bills []Bill) []Policy {
	seen := make(map[PolicyID]bool)
	var policies []Policy
	for _, b := range bills {
		if b.PolicyID == "" || seen[b.PolicyID] {
			continue
		}
		seen[b.PolicyID] = true
		policies = append(policies, Policy{ID: b.PolicyID, Name: b.PolicyName})
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].ID < policies[j].ID })
	return policies
}

// deriveMetadata computes congress range, date range, and per-policy bill
// counts from the loaded tables. Bills without a categorized policy are
// excluded from the policy counts.
func deriveMetadata(ds *Dataset) Metadata {
	md := Metadata{
		TotalBills:          len(ds.Bills),
		TotalCollaborations: len(ds.Collaborations),
		TotalLegislators:    len(ds.Legislators),
		PartyDistribution:   make(map[string]int),
		Policies: PolicyStats{
			Total:  len(ds.Policies),
			Counts: make(map[string]int),
		},
	}

	for i, b := range ds.Bills {
		if i == 0 || b.Congress < md.CongressRange.Start {
			md.CongressRange.Start = b.Congress
		}
		if b.Congress > md.CongressRange.End {
			md.CongressRange.End = b.Congress
		}
		if b.LatestActionDate != "" {
			if md.DateRange.Start == "" || b.LatestActionDate < md.DateRange.Start {
				md.DateRange.Start = b.LatestActionDate
			}
			if b.LatestActionDate > md.DateRange.End {
				md.DateRange.End = b.LatestActionDate
			}
		}
		if b.PolicyName != "" && b.PolicyName != "Uncategorized" {
			md.Policies.Counts[b.PolicyName]++
		}
	}

	for _, leg := range ds.Legislators {
		md.PartyDistribution[string(leg.Party)]++
	}

	return md
}
