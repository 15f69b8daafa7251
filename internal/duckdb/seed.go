package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// snapshot is a full copy of a provider's data set.
type snapshot struct {
	incidents []model.Incident
	metrics   []model.MetricPoint
	kpis      []model.KPI
	rules     []model.DataQualityRule
	histories []model.RuleHistory
	nodes     []model.TelemetryNode
	notes     []model.TelemetryNote
}

func readSnapshot(ctx context.Context, src model.Provider) (*snapshot, error) {
	var snap snapshot
	var err error

	if snap.incidents, err = src.Incidents(ctx); err != nil {
		return nil, fmt.Errorf("read incidents: %w", err)
	}
	if snap.metrics, err = src.Metrics(ctx); err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}
	if snap.kpis, err = src.KPIs(ctx); err != nil {
		return nil, fmt.Errorf("read kpis: %w", err)
	}
	if snap.rules, err = src.QualityRules(ctx); err != nil {
		return nil, fmt.Errorf("read quality rules: %w", err)
	}
	for _, r := range snap.rules {
		h, err := src.RuleHistory(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("read history for %s: %w", r.ID, err)
		}
		snap.histories = append(snap.histories, h)
	}
	if snap.nodes, err = src.TelemetryNodes(ctx); err != nil {
		return nil, fmt.Errorf("read telemetry nodes: %w", err)
	}
	if snap.notes, err = src.TelemetryNotes(ctx); err != nil {
		return nil, fmt.Errorf("read telemetry notes: %w", err)
	}
	return &snap, nil
}

var seedTables = []string{
	"incidents", "metric_points", "kpis", "quality_rules",
	"rule_samples", "trigger_events", "telemetry_nodes", "telemetry_notes",
}

// Seed replaces the store's contents with src's data set in one transaction.
// Readers see either the previous data set or the new one, never a mix.
func (s *Store) Seed(ctx context.Context, src model.Provider) error {
	snap, err := readSnapshot(ctx, src)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range seedTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed: clear %s: %w", table, err)
		}
	}
	if err := insertSnapshot(ctx, tx, snap); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO seed_runs (seeded_at) VALUES (?)", time.Now().UTC()); err != nil {
		return fmt.Errorf("seed: record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func insertSnapshot(ctx context.Context, tx *sql.Tx, snap *snapshot) error {
	for i, inc := range snap.incidents {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO incidents (position, id, title, severity, status, ts, affected_artist, missed_detections, remediation_steps)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, inc.ID, inc.Title, string(inc.Severity), string(inc.Status), inc.Timestamp,
			inc.AffectedArtist, inc.MissedDetections, inc.RemediationSteps); err != nil {
			return fmt.Errorf("insert incident %s: %w", inc.ID, err)
		}
	}

	for i, p := range snap.metrics {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO metric_points (position, time_label, latency, tokens, accuracy, embeddings, infringements)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, p.Time, p.Latency, p.Tokens, p.Accuracy, p.Embeddings, p.Infringements); err != nil {
			return fmt.Errorf("insert metric point %d: %w", i, err)
		}
	}

	for i, k := range snap.kpis {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kpis (position, label, value, change, trend) VALUES (?, ?, ?, ?, ?)`,
			i, k.Label, k.Value, k.Change, string(k.Trend)); err != nil {
			return fmt.Errorf("insert kpi %s: %w", k.Label, err)
		}
	}

	for i, r := range snap.rules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quality_rules (position, id, name, category, threshold, current_value, unit, status, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Name, r.Category, r.Threshold, r.CurrentValue, r.Unit, string(r.Status), r.Description); err != nil {
			return fmt.Errorf("insert rule %s: %w", r.ID, err)
		}
	}

	for _, h := range snap.histories {
		for i, smp := range h.Samples {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rule_samples (rule_id, position, time_label, value) VALUES (?, ?, ?, ?)`,
				h.RuleID, i, smp.Time, smp.Value); err != nil {
				return fmt.Errorf("insert sample for %s: %w", h.RuleID, err)
			}
		}
		for i, ev := range h.Events {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO trigger_events (rule_id, position, time_label, value, status) VALUES (?, ?, ?, ?, ?)`,
				h.RuleID, i, ev.Time, ev.Value, string(ev.Status)); err != nil {
				return fmt.Errorf("insert event for %s: %w", h.RuleID, err)
			}
		}
	}

	for i, n := range snap.nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO telemetry_nodes (position, id, label, kind) VALUES (?, ?, ?, ?)`,
			i, n.ID, n.Label, string(n.Kind)); err != nil {
			return fmt.Errorf("insert telemetry node %s: %w", n.ID, err)
		}
	}

	for i, n := range snap.notes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO telemetry_notes (position, heading, body) VALUES (?, ?, ?)`,
			i, n.Heading, n.Body); err != nil {
			return fmt.Errorf("insert telemetry note %s: %w", n.Heading, err)
		}
	}
	return nil
}

// LastSeeded returns the time of the most recent Seed, or the zero time if
// the store has never been seeded.
func (s *Store) LastSeeded(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var ts sql.NullTime
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seeded_at) FROM seed_runs`).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("query seed runs: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return ts.Time, nil
}

// Empty reports whether the store holds no incidents.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&n); err != nil {
		return false, fmt.Errorf("count incidents: %w", err)
	}
	return n == 0, nil
}
