package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"LOW", SeverityLow, false},
		{"critical", SeverityCritical, false},
		{" High ", SeverityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(Severities); i++ {
		if Severities[i-1].Rank() >= Severities[i].Rank() {
			t.Errorf("%s rank %d not below %s rank %d",
				Severities[i-1], Severities[i-1].Rank(), Severities[i], Severities[i].Rank())
		}
	}
	if Severity("BOGUS").Rank() != -1 {
		t.Error("unknown severity should rank -1")
	}
}

func TestParseIncidentStatus(t *testing.T) {
	t.Parallel()

	if s, err := ParseIncidentStatus("investigating"); err != nil || s != StatusInvestigating {
		t.Errorf("ParseIncidentStatus(investigating) = %q, %v", s, err)
	}
	if _, err := ParseIncidentStatus("CLOSED"); err == nil {
		t.Error("expected error for CLOSED")
	}
}

func TestIncidentJSONFieldNames(t *testing.T) {
	t.Parallel()

	inc := Incident{ID: "inc-001", AffectedArtist: "Someone", MissedDetections: 3}
	data, err := json.Marshal(inc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"affectedArtist"`, `"missedDetections":3`} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON %s missing %s", s, key)
		}
	}
	if strings.Contains(s, "remediationSteps") {
		t.Errorf("empty remediationSteps should be omitted: %s", s)
	}
}

func TestRuleProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule DataQualityRule
		want float64
	}{
		{"under limit", DataQualityRule{Threshold: "< 2.0%", CurrentValue: 0.8, Unit: "%"}, 40},
		{"over limit caps", DataQualityRule{Threshold: "< 1.0%", CurrentValue: 4.2, Unit: "%"}, 100},
		{"score unit", DataQualityRule{Threshold: "< 0.75 Score", CurrentValue: 0.6, Unit: "Score"}, 80},
		{"no limit percent fallback", DataQualityRule{Threshold: "low", CurrentValue: 0.8, Unit: "%"}, 8},
		{"no limit other fallback", DataQualityRule{Threshold: "n/a", CurrentValue: 0.62, Unit: "Score"}, 62},
		{"negative clamps", DataQualityRule{Threshold: "< 2.0%", CurrentValue: -1, Unit: "%"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.Progress()
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleBreached(t *testing.T) {
	t.Parallel()

	if (DataQualityRule{Status: RuleHealthy}).Breached() {
		t.Error("healthy rule reported breached")
	}
	for _, s := range []RuleStatus{RuleWarning, RuleCritical} {
		if !(DataQualityRule{Status: s}).Breached() {
			t.Errorf("%s rule not reported breached", s)
		}
	}
}
