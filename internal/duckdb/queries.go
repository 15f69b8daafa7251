package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// Incidents returns all incidents in their seeded order.
func (s *Store) Incidents(ctx context.Context) ([]model.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, severity, status, ts, affected_artist, missed_detections, remediation_steps
		FROM incidents
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	out := make([]model.Incident, 0, 8)
	for rows.Next() {
		var inc model.Incident
		var sev, status string
		if err := rows.Scan(&inc.ID, &inc.Title, &sev, &status, &inc.Timestamp,
			&inc.AffectedArtist, &inc.MissedDetections, &inc.RemediationSteps); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		inc.Severity = model.Severity(sev)
		inc.Status = model.IncidentStatus(status)
		out = append(out, inc)
	}
	return out, rows.Err()
}

// Metrics returns the hourly series in order.
func (s *Store) Metrics(ctx context.Context) ([]model.MetricPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT time_label, latency, tokens, accuracy, embeddings, infringements
		FROM metric_points
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query metric points: %w", err)
	}
	defer rows.Close()

	out := make([]model.MetricPoint, 0, model.DefaultMetricPoints)
	for rows.Next() {
		var p model.MetricPoint
		if err := rows.Scan(&p.Time, &p.Latency, &p.Tokens, &p.Accuracy, &p.Embeddings, &p.Infringements); err != nil {
			return nil, fmt.Errorf("scan metric point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// KPIs returns the overview figures in order.
func (s *Store) KPIs(ctx context.Context) ([]model.KPI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT label, value, change, trend FROM kpis ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query kpis: %w", err)
	}
	defer rows.Close()

	out := make([]model.KPI, 0, 4)
	for rows.Next() {
		var k model.KPI
		var trend string
		if err := rows.Scan(&k.Label, &k.Value, &k.Change, &trend); err != nil {
			return nil, fmt.Errorf("scan kpi: %w", err)
		}
		k.Trend = model.Trend(trend)
		out = append(out, k)
	}
	return out, rows.Err()
}

// QualityRules returns the data-quality rules in order.
func (s *Store) QualityRules(ctx context.Context) ([]model.DataQualityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, threshold, current_value, unit, status, description
		FROM quality_rules
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query quality rules: %w", err)
	}
	defer rows.Close()

	out := make([]model.DataQualityRule, 0, 8)
	for rows.Next() {
		var r model.DataQualityRule
		var status string
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Threshold, &r.CurrentValue,
			&r.Unit, &status, &r.Description); err != nil {
			return nil, fmt.Errorf("scan quality rule: %w", err)
		}
		r.Status = model.RuleStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RuleHistory returns the stored samples and trigger events for a rule.
func (s *Store) RuleHistory(ctx context.Context, ruleID string) (model.RuleHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var exists string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM quality_rules WHERE id = ?`, ruleID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RuleHistory{}, fmt.Errorf("rule %q: %w", ruleID, model.ErrNotFound)
	}
	if err != nil {
		return model.RuleHistory{}, fmt.Errorf("lookup rule: %w", err)
	}

	h := model.RuleHistory{RuleID: ruleID}

	rows, err := s.db.QueryContext(ctx, `
		SELECT time_label, value FROM rule_samples
		WHERE rule_id = ?
		ORDER BY position`, ruleID)
	if err != nil {
		return model.RuleHistory{}, fmt.Errorf("query rule samples: %w", err)
	}
	for rows.Next() {
		var smp model.RuleSample
		if err := rows.Scan(&smp.Time, &smp.Value); err != nil {
			rows.Close()
			return model.RuleHistory{}, fmt.Errorf("scan rule sample: %w", err)
		}
		h.Samples = append(h.Samples, smp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.RuleHistory{}, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT time_label, value, status FROM trigger_events
		WHERE rule_id = ?
		ORDER BY position`, ruleID)
	if err != nil {
		return model.RuleHistory{}, fmt.Errorf("query trigger events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ev model.TriggerEvent
		var status string
		if err := rows.Scan(&ev.Time, &ev.Value, &status); err != nil {
			return model.RuleHistory{}, fmt.Errorf("scan trigger event: %w", err)
		}
		ev.Status = model.RuleStatus(status)
		h.Events = append(h.Events, ev)
	}
	return h, rows.Err()
}

// TelemetryNodes returns the pipeline stages in flow order.
func (s *Store) TelemetryNodes(ctx context.Context) ([]model.TelemetryNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, label, kind FROM telemetry_nodes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query telemetry nodes: %w", err)
	}
	defer rows.Close()

	out := make([]model.TelemetryNode, 0, 4)
	for rows.Next() {
		var n model.TelemetryNode
		var kind string
		if err := rows.Scan(&n.ID, &n.Label, &kind); err != nil {
			return nil, fmt.Errorf("scan telemetry node: %w", err)
		}
		n.Kind = model.NodeKind(kind)
		out = append(out, n)
	}
	return out, rows.Err()
}

// TelemetryNotes returns the descriptive cards in order.
func (s *Store) TelemetryNotes(ctx context.Context) ([]model.TelemetryNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT heading, body FROM telemetry_notes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query telemetry notes: %w", err)
	}
	defer rows.Close()

	out := make([]model.TelemetryNote, 0, 3)
	for rows.Next() {
		var n model.TelemetryNote
		if err := rows.Scan(&n.Heading, &n.Body); err != nil {
			return nil, fmt.Errorf("scan telemetry note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
