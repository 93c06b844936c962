package dataset

import (
	"encoding/json"
	"testing"
)

func TestParseParty(t *testing.T) {
	tests := []struct {
		raw  string
		want Party
	}{
		{"D", PartyDemocrat},
		{"Democrat", PartyDemocrat},
		{"democratic", PartyDemocrat},
		{"R", PartyRepublican},
		{"Republican", PartyRepublican},
		{"I", PartyIndependent},
		{"ID", PartyIndependent},
		{"O", PartyOther},
		{"", PartyOther},
		{"Libertarian", PartyOther},
		{" d ", PartyDemocrat},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseParty(tt.raw); got != tt.want {
				t.Errorf("ParseParty(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPolicyID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PolicyID
	}{
		{"string", `"12"`, "12"},
		{"integer", `12`, "12"},
		{"integral float", `12.0`, "12"},
		{"null", `null`, ""},
		{"fractional", `12.5`, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PolicyID
			if err := json.Unmarshal([]byte(tt.raw), &p); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
			}
			if p != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.raw, p, tt.want)
			}
		})
	}
}

func TestPolicyID_UnmarshalJSON_Invalid(t *testing.T) {
	var p PolicyID
	if err := json.Unmarshal([]byte(`{"x":1}`), &p); err == nil {
		t.Error("Unmarshal should reject non-scalar policy ids")
	}
}
