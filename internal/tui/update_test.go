package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
)

func TestInitLoadsSnapshot(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)

	if !m.loaded || m.loadInFlight {
		t.Fatalf("loaded=%v inFlight=%v, want true/false", m.loaded, m.loadInFlight)
	}
	if len(m.incidents) != 4 || len(m.rules) != 5 {
		t.Errorf("incidents=%d rules=%d, want 4/5", len(m.incidents), len(m.rules))
	}
	if len(m.metrics) != 24 || len(m.kpis) == 0 || len(m.nodes) == 0 || len(m.notes) == 0 {
		t.Errorf("metrics=%d kpis=%d nodes=%d notes=%d", len(m.metrics), len(m.kpis), len(m.nodes), len(m.notes))
	}
	if m.lastError != "" {
		t.Errorf("lastError = %q, want empty", m.lastError)
	}
}

func TestLoadFailureSurfacesError(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, failingProvider{}, nil)

	if !m.loaded {
		t.Fatal("a failed load still ends the loading state")
	}
	if m.lastError != errUnavailable.Error() {
		t.Errorf("lastError = %q, want %q", m.lastError, errUnavailable.Error())
	}
	if !strings.Contains(m.View(), "data error") {
		t.Error("status line should show the data error indicator")
	}
}

func TestAnalysisIgnoresRetriggerWhileRunning(t *testing.T) {
	t.Parallel()
	analyzer := &stubAnalyzer{result: rca.Analysis{RootCause: "Model drift.", Remediation: "Retrain."}}
	m := newLoadedDashboard(t, newMockProvider(t), analyzer)
	m.SetTab(TabIncidents)

	first := send(m, runeKey("a"))
	if first == nil {
		t.Fatal("a should start an analysis")
	}
	if !m.analyzing["inc-001"] {
		t.Fatal("selected card should be analyzing")
	}
	if again := send(m, runeKey("a")); again != nil {
		t.Error("a second trigger while running should be ignored")
	}
	if !strings.Contains(m.View(), "Gemini Thinking...") {
		t.Error("analyzing card should show the thinking indicator")
	}

	drain(t, m, first)
	if analyzer.Calls() != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.Calls())
	}
	if m.analyzing["inc-001"] {
		t.Error("analyzing flag should clear when the result arrives")
	}
	if got := m.analyses["inc-001"]; got != analyzer.result {
		t.Errorf("analysis = %+v, want %+v", got, analyzer.result)
	}

	// Another card runs independently.
	press(t, m, runeKey("j"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.analyses["inc-002"]; !ok {
		t.Error("enter should analyze the second card")
	}
	if analyzer.Calls() != 2 {
		t.Errorf("analyzer calls = %d, want 2", analyzer.Calls())
	}
}

func TestAnalysisWithoutAnalyzerFallsBack(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)
	m.SetTab(TabIncidents)

	press(t, m, runeKey("a"))
	if got := m.analyses["inc-001"]; got != rca.Fallback {
		t.Errorf("analysis = %+v, want fallback", got)
	}
}

func TestAnalysisOnEmptyListIsNoop(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)
	m.SetTab(TabIncidents)
	m.Filter().SetQuery("no such incident")

	if cmd := send(m, runeKey("a")); cmd != nil {
		t.Error("analysis with no selected card should do nothing")
	}
}

func TestToggleRuleLoadsHistory(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)
	m.SetTab(TabAlerts)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.expandedRule != "dq-001" {
		t.Fatalf("expanded = %q, want dq-001", m.expandedRule)
	}
	h, ok := m.histories["dq-001"]
	if !ok || len(h.Samples) == 0 {
		t.Fatalf("history not loaded: %+v", h)
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.expandedRule != "" {
		t.Errorf("second enter should collapse, expanded = %q", m.expandedRule)
	}
}

func TestRerunReloadsData(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)
	m.SetTab(TabAlerts)
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.lastUpdate

	time.Sleep(time.Millisecond)
	press(t, m, runeKey("r"))

	if m.rerunning {
		t.Error("rerunning flag should clear")
	}
	if m.lastError != "" {
		t.Errorf("lastError = %q", m.lastError)
	}
	if !m.lastUpdate.After(before) {
		t.Error("re-run should reload the snapshot")
	}
	if _, ok := m.histories["dq-001"]; !ok {
		t.Error("expanded rule history should be reloaded after the re-run")
	}
}

func TestRerunUnsupportedProvider(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, readOnlyProvider{newMockProvider(t)}, nil)
	m.SetTab(TabAlerts)

	press(t, m, runeKey("r"))
	if !strings.Contains(m.lastError, "does not support") {
		t.Errorf("lastError = %q", m.lastError)
	}
}

func TestQuitClosesContext(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel in-flight work")
	}
}

func TestTickIgnoredWithoutRefresh(t *testing.T) {
	t.Parallel()
	m := newLoadedDashboard(t, newMockProvider(t), nil)

	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("tick should not reload when refresh is disabled")
	}
}
