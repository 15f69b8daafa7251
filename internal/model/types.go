package model

import (
	"fmt"
	"strings"
)

// Severity is the incident priority, LOW through CRITICAL.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists every severity in ascending rank.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Rank returns the ordinal position of s (LOW=0 ... CRITICAL=3), or -1 if unknown.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool { return s.Rank() >= 0 }

// ParseSeverity converts a case-insensitive name to a Severity.
func ParseSeverity(v string) (Severity, error) {
	s := Severity(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q", v)
	}
	return s, nil
}

// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus string

const (
	StatusOpen          IncidentStatus = "OPEN"
	StatusInvestigating IncidentStatus = "INVESTIGATING"
	StatusResolved      IncidentStatus = "RESOLVED"
)

// Statuses lists every incident status in lifecycle order.
var Statuses = []IncidentStatus{StatusOpen, StatusInvestigating, StatusResolved}

// Valid reports whether s is one of the known statuses.
func (s IncidentStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ParseIncidentStatus converts a case-insensitive name to an IncidentStatus.
func ParseIncidentStatus(v string) (IncidentStatus, error) {
	s := IncidentStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown incident status %q", v)
	}
	return s, nil
}

// Incident is a recorded anomaly in the monitored detection pipeline.
// Incidents are read-only once constructed.
type Incident struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Severity         Severity       `json:"severity"`
	Status           IncidentStatus `json:"status"`
	Timestamp        string         `json:"timestamp"`
	AffectedArtist   string         `json:"affectedArtist"`
	MissedDetections int            `json:"missedDetections"`
	RemediationSteps string         `json:"remediationSteps,omitempty"`
}

// MetricPoint is one hourly sample of pipeline health.
type MetricPoint struct {
	Time          string  `json:"time"`
	Latency       float64 `json:"latency"`
	Tokens        float64 `json:"tokens"`
	Accuracy      float64 `json:"accuracy"`
	Embeddings    float64 `json:"embeddings"`
	Infringements int     `json:"infringements"`
}

// RuleStatus is the precomputed health of a data-quality rule.
type RuleStatus string

const (
	RuleHealthy  RuleStatus = "Healthy"
	RuleWarning  RuleStatus = "Warning"
	RuleCritical RuleStatus = "Critical"
)

// DataQualityRule is a monitored input metric with a threshold.
type DataQualityRule struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Category     string     `json:"category" yaml:"category"`
	Threshold    string     `json:"threshold" yaml:"threshold"`
	CurrentValue float64    `json:"currentValue" yaml:"currentValue"`
	Unit         string     `json:"unit" yaml:"unit"`
	Status       RuleStatus `json:"status" yaml:"status"`
	Description  string     `json:"description" yaml:"description"`
}

// Breached reports whether the rule is in a non-healthy state.
func (r DataQualityRule) Breached() bool {
	return r.Status != RuleHealthy
}

// RuleSample is one point of a rule's metric history.
type RuleSample struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// TriggerEvent records a past evaluation of a rule.
type TriggerEvent struct {
	Time   string     `json:"time"`
	Value  float64    `json:"value"`
	Status RuleStatus `json:"status"`
}

// RuleHistory bundles the expanded-view data of a single rule.
type RuleHistory struct {
	RuleID  string         `json:"ruleId"`
	Samples []RuleSample   `json:"samples"`
	Events  []TriggerEvent `json:"events"`
}

// NodeKind is the role of a stage in the telemetry pipeline.
type NodeKind string

const (
	NodeSource     NodeKind = "source"
	NodeMiddleware NodeKind = "middleware"
	NodeAggregator NodeKind = "aggregator"
	NodeSink       NodeKind = "sink"
)

// TelemetryNode is one stage of the telemetry flow diagram.
type TelemetryNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"type"`
}

// TelemetryNote is a descriptive card shown beneath the flow diagram.
type TelemetryNote struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Trend is the direction of a KPI change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// KPI is a headline figure on the overview tab.
type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}
