package model

import "context"

// IncidentReader provides the incident collection.
type IncidentReader interface {
	Incidents(ctx context.Context) ([]Incident, error)
}

// MetricsReader provides the overview time series and headline figures.
type MetricsReader interface {
	Metrics(ctx context.Context) ([]MetricPoint, error)
	KPIs(ctx context.Context) ([]KPI, error)
}

// QualityReader provides data-quality rules and their history.
type QualityReader interface {
	QualityRules(ctx context.Context) ([]DataQualityRule, error)
	RuleHistory(ctx context.Context, ruleID string) (RuleHistory, error)
}

// TelemetryReader provides the static telemetry flow description.
type TelemetryReader interface {
	TelemetryNodes(ctx context.Context) ([]TelemetryNode, error)
	TelemetryNotes(ctx context.Context) ([]TelemetryNote, error)
}

// Provider is the unified read contract behind every dashboard surface.
// The mock generator and the DuckDB store both satisfy it.
type Provider interface {
	IncidentReader
	MetricsReader
	QualityReader
	TelemetryReader
}

// Regenerator is optionally implemented by providers whose data can be
// re-sampled on demand (the "Re-run Validation" action).
type Regenerator interface {
	Regenerate(ctx context.Context) error
}
