package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thobs40/LLM-Rights-Monitor/internal/mockdata"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
)

type stubAnalyzer struct {
	mu     sync.Mutex
	calls  int
	result rca.Analysis
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ model.Incident) rca.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result
}

func (s *stubAnalyzer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// readOnlyProvider hides the mock provider's Regenerate method.
type readOnlyProvider struct {
	model.Provider
}

// failingProvider fails every read.
type failingProvider struct{}

var errUnavailable = errors.New("source unavailable")

func (failingProvider) Incidents(context.Context) ([]model.Incident, error) {
	return nil, errUnavailable
}
func (failingProvider) Metrics(context.Context) ([]model.MetricPoint, error) {
	return nil, errUnavailable
}
func (failingProvider) KPIs(context.Context) ([]model.KPI, error) { return nil, errUnavailable }
func (failingProvider) QualityRules(context.Context) ([]model.DataQualityRule, error) {
	return nil, errUnavailable
}
func (failingProvider) RuleHistory(context.Context, string) (model.RuleHistory, error) {
	return model.RuleHistory{}, errUnavailable
}
func (failingProvider) TelemetryNodes(context.Context) ([]model.TelemetryNode, error) {
	return nil, errUnavailable
}
func (failingProvider) TelemetryNotes(context.Context) ([]model.TelemetryNote, error) {
	return nil, errUnavailable
}

func newMockProvider(t *testing.T) *mockdata.Provider {
	t.Helper()
	p, err := mockdata.New(mockdata.WithRand(rand.New(rand.NewPCG(7, 11))))
	if err != nil {
		t.Fatalf("mockdata.New: %v", err)
	}
	return p
}

// newLoadedDashboard returns a 140x60 dashboard with its first snapshot applied.
func newLoadedDashboard(t *testing.T, provider model.Provider, analyzer rca.Analyzer) *DashboardModel {
	t.Helper()
	m := NewDashboardModel(provider, analyzer, Options{DataSource: "mock"})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	drain(t, m, m.Init())
	return m
}

// drain runs cmd and every command it produces, feeding the resulting
// messages back into m. Spinner ticks are dropped so the queue settles.
func drain(t *testing.T, m *DashboardModel, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key and drains whatever it schedules.
func press(t *testing.T, m *DashboardModel, k tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(k)
	drain(t, m, cmd)
}

// send delivers msg without running the returned command. Text input
// commands only drive cursor blinking.
func send(m *DashboardModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *DashboardModel, s string) {
	for _, r := range s {
		send(m, runeKey(string(r)))
	}
}
