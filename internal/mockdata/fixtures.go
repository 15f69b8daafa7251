package mockdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

//go:embed rules.yaml
var rulesYAML []byte

func loadRules() ([]model.DataQualityRule, error) {
	var rules []model.DataQualityRule
	if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
		return nil, fmt.Errorf("parsing embedded rules: %w", err)
	}
	return rules, nil
}

var incidents = []model.Incident{
	{
		ID:               "inc-001",
		Title:            "Sudden Drop in Detection Accuracy",
		Severity:         model.SeverityCritical,
		Status:           model.StatusOpen,
		Timestamp:        "2023-10-27 14:32:11",
		AffectedArtist:   "Global Visual Artists Collective",
		MissedDetections: 45,
	},
	{
		ID:               "inc-002",
		Title:            "Vertex AI Latency Spike >3s",
		Severity:         model.SeverityHigh,
		Status:           model.StatusInvestigating,
		Timestamp:        "2023-10-27 12:05:01",
		AffectedArtist:   "System-wide",
		MissedDetections: 0,
	},
	{
		ID:               "inc-003",
		Title:            "Unauthorized API Key Usage Attempt",
		Severity:         model.SeverityMedium,
		Status:           model.StatusResolved,
		Timestamp:        "2023-10-26 23:58:45",
		AffectedArtist:   "N/A",
		MissedDetections: 0,
	},
	{
		ID:               "inc-004",
		Title:            "Prompt Injection Pattern Detected",
		Severity:         model.SeverityHigh,
		Status:           model.StatusOpen,
		Timestamp:        "2023-10-26 18:20:00",
		AffectedArtist:   "Creative Commons Library",
		MissedDetections: 12,
	},
}

var telemetryNodes = []model.TelemetryNode{
	{ID: "vertex", Label: "Vertex AI / Gemini", Kind: model.NodeSource},
	{ID: "logging", Label: "Cloud Logging", Kind: model.NodeMiddleware},
	{ID: "datadog", Label: "Datadog", Kind: model.NodeAggregator},
	{ID: "dashboard", Label: "Rights Monitor Dashboard", Kind: model.NodeSink},
}

var telemetryNotes = []model.TelemetryNote{
	{
		Heading: "Vertex AI Integration",
		Body:    "Direct streaming of Gemini logs via Cloud Logging export to Datadog for real-time prompt analysis.",
	},
	{
		Heading: "Cloud SQL Store",
		Body:    "Historical indexing of infringements and fingerprint signatures for copyright matching.",
	},
	{
		Heading: "Security Shield",
		Body:    "Automated alerting on unauthorized prompt injection patterns or anomalous access tokens.",
	},
}

var kpis = []model.KPI{
	{Label: "Avg Latency", Value: "432ms", Change: "-12%", Trend: model.TrendDown},
	{Label: "Detection Accuracy", Value: "98.4%", Change: "+0.5%", Trend: model.TrendUp},
	{Label: "Revenue Recovered", Value: "$12,450", Change: "+24%", Trend: model.TrendUp},
	{Label: "Daily Token Usage", Value: "1.2M", Change: "+5%", Trend: model.TrendUp},
}
