package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress dispatches key events: modal stack first, then the inline
// search input, then global dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.Close()
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleKey(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
// Only reached when no modal is on the stack and the search box is idle.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
		return m, nil

	case key.Matches(msg, k.Tab1):
		m.SetTab(TabOverview)
		return m, nil
	case key.Matches(msg, k.Tab2):
		m.SetTab(TabIncidents)
		return m, nil
	case key.Matches(msg, k.Tab3):
		m.SetTab(TabAlerts)
		return m, nil
	case key.Matches(msg, k.Tab4):
		m.SetTab(TabTelemetry)
		return m, nil
	case key.Matches(msg, k.NextTab):
		m.nextTab()
		return m, nil
	case key.Matches(msg, k.PrevTab):
		m.prevTab()
		return m, nil

	case key.Matches(msg, k.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		if !m.sidebarVisible {
			m.activeSection = SectionContent
		}
		m.searchInput.Width = max(10, m.contentWidth()-12)
		return m, nil

	case key.Matches(msg, k.FocusSidebar):
		if m.activeSection == SectionSidebar || !m.sidebarVisible {
			m.activeSection = SectionContent
		} else {
			m.activeSection = SectionSidebar
			m.sidebarCursor = int(m.activeTab)
		}
		return m, nil
	}

	if m.activeSection == SectionSidebar && m.sidebarVisible {
		switch {
		case key.Matches(msg, k.Up):
			m.moveSidebarCursor(-1)
			return m, nil
		case key.Matches(msg, k.Down):
			m.moveSidebarCursor(1)
			return m, nil
		case key.Matches(msg, k.Enter):
			m.activateSidebarCursor()
			m.activeSection = SectionContent
			return m, nil
		case key.Matches(msg, k.Escape):
			m.activeSection = SectionContent
			return m, nil
		}
	}

	switch m.activeTab {
	case TabIncidents:
		return m.handleIncidentKeys(msg)
	case TabAlerts:
		return m.handleAlertKeys(msg)
	}
	return m, nil
}

// handleIncidentKeys handles the incidents tab: search, filters, analysis.
func (m *DashboardModel) handleIncidentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Search):
		m.activeSection = SectionContent
		m.searchActive = true
		m.searchInput.SetValue(m.filter.Query().Text)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, k.NextSeverity):
		m.filter.CycleSeverity(1)
	case key.Matches(msg, k.PrevSeverity):
		m.filter.CycleSeverity(-1)
	case key.Matches(msg, k.NextStatus):
		m.filter.CycleStatus(1)
	case key.Matches(msg, k.PrevStatus):
		m.filter.CycleStatus(-1)

	case key.Matches(msg, k.SeverityFilter):
		m.PushModal(NewSeverityPickerModal(m))
		return m, nil
	case key.Matches(msg, k.StatusFilter):
		m.PushModal(NewStatusPickerModal(m))
		return m, nil

	case key.Matches(msg, k.ClearFilters), key.Matches(msg, k.Escape):
		m.clearFilters()
		return m, nil

	case key.Matches(msg, k.Analyze), key.Matches(msg, k.Enter):
		return m, m.triggerAnalysis()

	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, k.Down):
		m.moveSelection(1)
		return m, nil

	default:
		return m, nil
	}

	m.clampCursors()
	return m, nil
}

// handleAlertKeys handles the data-quality tab: selection, expansion, re-run.
func (m *DashboardModel) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Rerun):
		return m, m.triggerRerun()
	case key.Matches(msg, k.Enter):
		return m, m.toggleRule()
	case key.Matches(msg, k.Escape):
		m.expandedRule = ""
	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
	case key.Matches(msg, k.Down):
		m.moveSelection(1)
	}
	return m, nil
}

// moveSelection moves the cursor of the focused list by delta.
func (m *DashboardModel) moveSelection(delta int) {
	if m.activeSection == SectionSidebar && m.sidebarVisible {
		m.moveSidebarCursor(delta)
		return
	}
	switch m.activeTab {
	case TabIncidents:
		m.incidentCursor = clampIndex(m.incidentCursor+delta, len(m.filteredIncidents()))
	case TabAlerts:
		m.ruleCursor = clampIndex(m.ruleCursor+delta, len(m.rules))
	}
}
