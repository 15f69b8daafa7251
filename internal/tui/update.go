package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
)

// dataLoadedMsg carries one provider snapshot back to the dashboard.
type dataLoadedMsg struct {
	incidents    []model.Incident
	hasIncidents bool
	metrics      []model.MetricPoint
	hasMetrics   bool
	kpis         []model.KPI
	hasKPIs      bool
	rules        []model.DataQualityRule
	hasRules     bool
	nodes        []model.TelemetryNode
	hasNodes     bool
	notes        []model.TelemetryNote
	hasNotes     bool
	at           time.Time
	lastError    string // first provider error encountered during the load
}

// ruleHistoryLoadedMsg carries the expanded view data of one rule.
type ruleHistoryLoadedMsg struct {
	ruleID  string
	history model.RuleHistory
	err     error
}

// analysisDoneMsg carries a finished analysis for one incident card.
type analysisDoneMsg struct {
	incidentID string
	analysis   rca.Analysis
}

// rerunDoneMsg reports the end of a validation re-run.
type rerunDoneMsg struct {
	err error
}

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(10, m.contentWidth()-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case ActionMsg:
		return m, m.handleAction(msg)

	case TickMsg:
		if m.refreshInterval <= 0 {
			return m, nil
		}
		return m, tea.Batch(m.startLoad(), m.scheduleTick())

	case dataLoadedMsg:
		m.loadInFlight = false
		return m, m.applyData(msg)

	case ruleHistoryLoadedMsg:
		if msg.err != nil {
			m.recordError(msg.err)
			return m, nil
		}
		m.histories[msg.ruleID] = msg.history
		return m, nil

	case analysisDoneMsg:
		delete(m.analyzing, msg.incidentID)
		m.analyses[msg.incidentID] = msg.analysis
		return m, nil

	case rerunDoneMsg:
		m.rerunning = false
		if msg.err != nil {
			m.recordError(msg.err)
			return m, nil
		}
		clear(m.histories)
		return m, m.startLoad()

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleAction applies a request sent by a modal.
func (m *DashboardModel) handleAction(msg ActionMsg) tea.Cmd {
	switch msg.Action {
	case ActionPushModal:
		if modal, ok := msg.Payload.(Modal); ok {
			m.PushModal(modal)
		}
	case ActionSetTab:
		if t, ok := msg.Payload.(Tab); ok {
			m.SetTab(t)
		}
	case ActionSetSeverity:
		if s, ok := msg.Payload.(*model.Severity); ok {
			m.filter.SetSeverity(s)
			m.clampCursors()
		}
	case ActionSetStatus:
		if s, ok := msg.Payload.(*model.IncidentStatus); ok {
			m.filter.SetStatus(s)
			m.clampCursors()
		}
	}
	return nil
}

// recordError surfaces an error in the status line.
func (m *DashboardModel) recordError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	m.logger.Error("provider read failed", "error", err)
	m.lastError = err.Error()
	m.lastErrorAt = time.Now()
}

// startLoad fetches a fresh snapshot unless one is already in flight.
func (m *DashboardModel) startLoad() tea.Cmd {
	if m.loadInFlight || m.provider == nil {
		return nil
	}
	m.loadInFlight = true
	return m.loadDataCmd()
}

func (m *DashboardModel) loadDataCmd() tea.Cmd {
	provider := m.provider
	ctx := m.ctx

	return func() tea.Msg {
		msg := dataLoadedMsg{at: time.Now()}

		collectErr := func(err error) {
			if err != nil && msg.lastError == "" {
				msg.lastError = err.Error()
			}
		}

		if v, err := provider.Incidents(ctx); err == nil {
			msg.incidents, msg.hasIncidents = v, true
		} else {
			collectErr(err)
		}
		if v, err := provider.Metrics(ctx); err == nil {
			msg.metrics, msg.hasMetrics = v, true
		} else {
			collectErr(err)
		}
		if v, err := provider.KPIs(ctx); err == nil {
			msg.kpis, msg.hasKPIs = v, true
		} else {
			collectErr(err)
		}
		if v, err := provider.QualityRules(ctx); err == nil {
			msg.rules, msg.hasRules = v, true
		} else {
			collectErr(err)
		}
		if v, err := provider.TelemetryNodes(ctx); err == nil {
			msg.nodes, msg.hasNodes = v, true
		} else {
			collectErr(err)
		}
		if v, err := provider.TelemetryNotes(ctx); err == nil {
			msg.notes, msg.hasNotes = v, true
		} else {
			collectErr(err)
		}

		return msg
	}
}

func (m *DashboardModel) applyData(msg dataLoadedMsg) tea.Cmd {
	if msg.lastError != "" {
		m.logger.Error("provider read failed", "error", msg.lastError)
		m.lastError = msg.lastError
		m.lastErrorAt = time.Now()
	} else {
		m.lastError = ""
	}

	if msg.hasIncidents {
		m.incidents = msg.incidents
	}
	if msg.hasMetrics {
		m.metrics = msg.metrics
	}
	if msg.hasKPIs {
		m.kpis = msg.kpis
	}
	if msg.hasRules {
		m.rules = msg.rules
	}
	if msg.hasNodes {
		m.nodes = msg.nodes
	}
	if msg.hasNotes {
		m.notes = msg.notes
	}
	m.loaded = true
	m.lastUpdate = msg.at
	m.clampCursors()

	// Keep the open expansion populated after a re-run cleared the cache.
	if m.expandedRule != "" {
		if _, ok := m.histories[m.expandedRule]; !ok {
			return m.loadRuleHistoryCmd(m.expandedRule)
		}
	}
	return nil
}

func (m *DashboardModel) loadRuleHistoryCmd(ruleID string) tea.Cmd {
	provider := m.provider
	ctx := m.ctx
	if provider == nil {
		return nil
	}
	return func() tea.Msg {
		h, err := provider.RuleHistory(ctx, ruleID)
		return ruleHistoryLoadedMsg{ruleID: ruleID, history: h, err: err}
	}
}

// triggerAnalysis starts an analysis of the selected incident card. A card
// whose analysis is still running ignores the request.
func (m *DashboardModel) triggerAnalysis() tea.Cmd {
	inc, ok := m.selectedIncident()
	if !ok || m.analyzing[inc.ID] {
		return nil
	}
	m.analyzing[inc.ID] = true
	return tea.Batch(m.analyzeCmd(inc), m.startSpinner())
}

func (m *DashboardModel) analyzeCmd(inc model.Incident) tea.Cmd {
	analyzer := m.analyzer
	ctx := m.ctx
	return func() tea.Msg {
		if analyzer == nil {
			return analysisDoneMsg{incidentID: inc.ID, analysis: rca.Fallback}
		}
		return analysisDoneMsg{incidentID: inc.ID, analysis: analyzer.Analyze(ctx, inc)}
	}
}

// triggerRerun re-samples the provider's data when it supports it.
func (m *DashboardModel) triggerRerun() tea.Cmd {
	if m.rerunning {
		return nil
	}
	regen, ok := m.provider.(model.Regenerator)
	if !ok {
		m.lastError = "data source does not support validation re-runs"
		m.lastErrorAt = time.Now()
		return nil
	}
	m.rerunning = true
	ctx := m.ctx
	return tea.Batch(func() tea.Msg {
		return rerunDoneMsg{err: regen.Regenerate(ctx)}
	}, m.startSpinner())
}

// toggleRule expands the selected rule, or collapses it if already expanded.
func (m *DashboardModel) toggleRule() tea.Cmd {
	r, ok := m.selectedRule()
	if !ok {
		return nil
	}
	if m.expandedRule == r.ID {
		m.expandedRule = ""
		return nil
	}
	m.expandedRule = r.ID
	if _, cached := m.histories[r.ID]; cached {
		return nil
	}
	return m.loadRuleHistoryCmd(r.ID)
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleMouse(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(msg.X, msg.Y)

	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.moveSelection(1)
		} else {
			m.moveSelection(-1)
		}

	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.moveSelection(-1)
		} else {
			m.moveSelection(1)
		}
	}
	return m, nil
}

// handleMouseClick focuses the sidebar or content and selects tabs.
func (m *DashboardModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	if m.sidebarVisible && x < sidebarWidth {
		m.activeSection = SectionSidebar
		if idx, ok := m.sidebarCursorAtMouseRow(y); ok {
			m.sidebarCursor = idx
			m.activateSidebarCursor()
		}
		return m, nil
	}

	m.activeSection = SectionContent
	return m, nil
}
