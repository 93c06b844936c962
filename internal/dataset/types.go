// Package dataset defines the in-memory model for the legislative
// collaboration network: legislators, bills, collaboration records, policy
// areas, and feed metadata. The model is loaded once and is read-only
// afterwards; everything downstream (subgraphs, layouts, view state) is
// derived from it.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Party is a legislator's party affiliation.
type Party string

// Recognized party values. Source feeds use single letters; anything
// unrecognized maps to PartyOther.
const (
	PartyDemocrat    Party = "Democrat"
	PartyRepublican  Party = "Republican"
	PartyIndependent Party = "Independent"
	PartyOther       Party = "Other"
)

// ParseParty normalizes a raw party value from the feed.
func ParseParty(raw string) Party {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "D", "DEMOCRAT", "DEMOCRATIC":
		return PartyDemocrat
	case "R", "REPUBLICAN":
		return PartyRepublican
	case "I", "ID", "INDEPENDENT":
		return PartyIndependent
	default:
		return PartyOther
	}
}

// UnmarshalJSON parses a party from its feed representation.
func (p *Party) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ParseParty(raw)
	return nil
}

// PolicyID is a policy identifier. Source data mixes numeric and string ids,
// so ids are normalized to strings and compared as strings throughout.
type PolicyID string

// UnmarshalJSON accepts string, numeric, or null policy ids.
func (p *PolicyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PolicyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("policy id must be string or number: %w", err)
	}
	// Integral floats (42.0) are normalized to their integer form.
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		*p = PolicyID(strconv.FormatInt(int64(f), 10))
	} else {
		*p = PolicyID(n.String())
	}
	return nil
}

// Metrics holds precomputed per-legislator collaboration statistics.
type Metrics struct {
	TotalCollaborations int            `json:"total_collaborations"`
	PrimaryCount        int            `json:"primary_count,omitempty"`
	CosponsorCount      int            `json:"cosponsor_count,omitempty"`
	PartyCollaborations map[string]int `json:"party_collaborations,omitempty"`
}

// Legislator is a node in the collaboration network. One instance exists per
// id; duplicates in the feed are discarded (first seen wins).
type Legislator struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Party    Party   `json:"party"`
	State    string  `json:"state"`
	District *int    `json:"district,omitempty"`
	Metrics  Metrics `json:"metrics"`
}

// Bill is a piece of legislation. The same bill number may appear on many
// collaboration records; the bill table keeps one entry per number.
type Bill struct {
	BillNumber       string   `json:"bill_number"`
	Congress         int      `json:"congress,omitempty"`
	Title            string   `json:"title"`
	PolicyID         PolicyID `json:"policy_id"`
	PolicyName       string   `json:"policy_name"`
	LatestActionDate string   `json:"latest_action_date"`
	LatestActionText string   `json:"latest_action_text,omitempty"`
	OriginChamber    string   `json:"origin_chamber,omitempty"`
}

// Collaboration is one co-sponsorship event between two legislators on one
// bill. The (Source, Target) pair is unordered: (A,B) and (B,A) denote the
// same relationship.
type Collaboration struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	BillNumber string `json:"bill_number"`
}

// Policy is a policy subject area used for filtering and display.
type Policy struct {
	ID   PolicyID `json:"id"`
	Name string   `json:"name"`
}

// IntRange is an inclusive range of integers (congress numbers).
type IntRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DateRange spans the earliest and latest action dates in the feed,
// formatted YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PolicyStats summarizes bill counts per policy name.
type PolicyStats struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// Metadata describes the overall dataset. It is derived once at load time
// when the feed omits it, and read-only thereafter.
type Metadata struct {
	CongressRange       IntRange       `json:"congress_range"`
	DateRange           DateRange      `json:"date_range"`
	TotalBills          int            `json:"total_bills,omitempty"`
	TotalCollaborations int            `json:"total_collaborations,omitempty"`
	TotalLegislators    int            `json:"total_legislators,omitempty"`
	PartyDistribution   map[string]int `json:"party_distribution,omitempty"`
	Policies            PolicyStats    `json:"policies"`
	DateGenerated       string         `json:"date_generated,omitempty"`
}

// Dataset is the loaded network dataset plus lookup indexes. It is owned by
// the application root and never mutated after Parse returns it.
type Dataset struct {
	Legislators    []Legislator
	Bills          []Bill
	Collaborations []Collaboration
	Policies       []Policy
	Metadata       Metadata

	legislatorByID map[string]int
	billByNumber   map[string]int
	policyNameByID map[PolicyID]string
	states         map[string]bool
}

// Legislator returns the legislator with the given id, or false if the id is
// not in the table.
func (d *Dataset) Legislator(id string) (Legislator, bool) {
	i, ok := d.legislatorByID[id]
	if !ok {
		return Legislator{}, false
	}
	return d.Legislators[i], true
}

// Bill returns the bill with the given number, or false if unknown.
func (d *Dataset) Bill(number string) (Bill, bool) {
	i, ok := d.billByNumber[number]
	if !ok {
		return Bill{}, false
	}
	return d.Bills[i], true
}

// PolicyName resolves a policy id to its display name, or "" if unknown.
func (d *Dataset) PolicyName(id PolicyID) string {
	return d.policyNameByID[id]
}

// HasState reports whether any legislator belongs to the given state.
func (d *Dataset) HasState(state string) bool {
	return d.states[state]
}
