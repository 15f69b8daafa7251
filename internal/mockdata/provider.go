// Package mockdata serves the dashboard's fixed and randomly generated data.
package mockdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// Option configures a Provider.
type Option func(*Provider)

// WithRand sets the random source used for generated series.
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) { p.rng = r }
}

// WithMetricPoints overrides the number of hourly metric points.
func WithMetricPoints(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.metricPoints = n
		}
	}
}

// WithHistoryPoints overrides the number of samples per rule history.
func WithHistoryPoints(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.historyPoints = n
		}
	}
}

// Provider implements model.Provider over in-memory mock data. Random series
// are generated once at construction and again on Regenerate.
type Provider struct {
	mu            sync.RWMutex
	rng           *rand.Rand
	metricPoints  int
	historyPoints int

	rules     []model.DataQualityRule
	metrics   []model.MetricPoint
	histories map[string][]model.RuleSample
}

var _ model.Provider = (*Provider)(nil)
var _ model.Regenerator = (*Provider)(nil)

// New creates a Provider and generates its initial series.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		metricPoints:  model.DefaultMetricPoints,
		historyPoints: model.DefaultHistoryPoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		seed := uint64(time.Now().UnixNano())
		p.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	rules, err := loadRules()
	if err != nil {
		return nil, err
	}
	p.rules = rules
	p.generate()
	return p, nil
}

// Regenerate re-samples the metric series and rule histories.
func (p *Provider) Regenerate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generate()
	return nil
}

// generate must be called with mu held (or before the provider is shared).
func (p *Provider) generate() {
	p.metrics = make([]model.MetricPoint, p.metricPoints)
	for i := range p.metrics {
		p.metrics[i] = model.MetricPoint{
			Time:          fmt.Sprintf("%d:00", i),
			Latency:       p.uniform(200, 1000),
			Tokens:        p.uniform(1200, 4200),
			Accuracy:      p.uniform(94, 99),
			Embeddings:    p.uniform(40, 140),
			Infringements: p.rng.IntN(15),
		}
	}

	p.histories = make(map[string][]model.RuleSample, len(p.rules))
	for _, r := range p.rules {
		samples := make([]model.RuleSample, p.historyPoints)
		for i := range samples {
			samples[i] = model.RuleSample{
				Time:  fmt.Sprintf("%dh ago", i*2),
				Value: r.CurrentValue * p.uniform(0.8, 1.2),
			}
		}
		p.histories[r.ID] = samples
	}
}

func (p *Provider) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}

// Incidents returns the fixed incident list in its canonical order.
func (p *Provider) Incidents(ctx context.Context) ([]model.Incident, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(incidents), nil
}

// Metrics returns the current hourly series.
func (p *Provider) Metrics(ctx context.Context) ([]model.MetricPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.metrics), nil
}

// KPIs returns the headline overview figures.
func (p *Provider) KPIs(ctx context.Context) ([]model.KPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(kpis), nil
}

// QualityRules returns the data-quality rules.
func (p *Provider) QualityRules(ctx context.Context) ([]model.DataQualityRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(p.rules), nil
}

// RuleHistory returns the sample history and recent trigger events of a rule.
func (p *Provider) RuleHistory(ctx context.Context, ruleID string) (model.RuleHistory, error) {
	if err := ctx.Err(); err != nil {
		return model.RuleHistory{}, err
	}
	idx := slices.IndexFunc(p.rules, func(r model.DataQualityRule) bool { return r.ID == ruleID })
	if idx < 0 {
		return model.RuleHistory{}, fmt.Errorf("rule %q: %w", ruleID, model.ErrNotFound)
	}
	rule := p.rules[idx]

	p.mu.RLock()
	samples := slices.Clone(p.histories[ruleID])
	p.mu.RUnlock()

	return model.RuleHistory{
		RuleID:  ruleID,
		Samples: samples,
		Events:  TriggerEvents(rule),
	}, nil
}

// TriggerEvents derives the recent trigger events shown for an expanded rule.
func TriggerEvents(r model.DataQualityRule) []model.TriggerEvent {
	return []model.TriggerEvent{
		{Time: "10m ago", Value: r.CurrentValue, Status: r.Status},
		{Time: "4h ago", Value: r.CurrentValue * 0.9, Status: model.RuleHealthy},
		{Time: "18h ago", Value: r.CurrentValue * 1.2, Status: model.RuleWarning},
	}
}

// TelemetryNodes returns the pipeline stages in flow order.
func (p *Provider) TelemetryNodes(ctx context.Context) ([]model.TelemetryNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(telemetryNodes), nil
}

// TelemetryNotes returns the cards shown under the flow diagram.
func (p *Provider) TelemetryNotes(ctx context.Context) ([]model.TelemetryNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(telemetryNotes), nil
}
