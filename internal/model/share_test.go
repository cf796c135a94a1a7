package model

import (
	"encoding/json"
	"testing"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantAll bool
		wantID  string
		covers  string
		covered bool
	}{
		{
			name:    "all scope covers any report",
			input:   "all",
			wantAll: true,
			covers:  "01ABC",
			covered: true,
		},
		{
			name:    "report scope covers that report",
			input:   "01ABC",
			wantID:  "01ABC",
			covers:  "01ABC",
			covered: true,
		},
		{
			name:    "report scope does not cover another report",
			input:   "01ABC",
			wantID:  "01ABC",
			covers:  "01XYZ",
			covered: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := ParseScope(tt.input)

			if scope.IsAll() != tt.wantAll {
				t.Errorf("IsAll() = %v, want %v", scope.IsAll(), tt.wantAll)
			}
			if id, ok := scope.ReportID(); ok && id != tt.wantID {
				t.Errorf("ReportID() = %q, want %q", id, tt.wantID)
			}
			if got := scope.Covers(tt.covers); got != tt.covered {
				t.Errorf("Covers(%q) = %v, want %v", tt.covers, got, tt.covered)
			}
			if scope.String() != tt.input {
				t.Errorf("String() = %q, want %q", scope.String(), tt.input)
			}
		})
	}
}

func TestShareScopeJSON(t *testing.T) {
	grant := ShareGrant{
		ID:          "grant-1",
		OwnerID:     "user-1",
		ViewerEmail: "friend@example.com",
		Scope:       ScopeAllReports(),
	}

	data, err := json.Marshal(grant)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded ShareGrant
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !decoded.Scope.IsAll() {
		t.Error("decoded scope lost its all flag")
	}

	var single ShareScope
	if err := json.Unmarshal([]byte(`"01ABC"`), &single); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if id, ok := single.ReportID(); !ok || id != "01ABC" {
		t.Errorf("ReportID() = %q, %v, want 01ABC, true", id, ok)
	}

	// Escape sequences decode like any JSON string.
	var escaped ShareScope
	if err := json.Unmarshal([]byte(`"a\"b"`), &escaped); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := escaped.String(); got != `a"b` {
		t.Errorf("String() = %q, want %q", got, `a"b`)
	}

	// Non-string input is an error, not a mangled scope.
	var bad ShareScope
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Error("Unmarshal() accepted a non-string scope")
	}
}
