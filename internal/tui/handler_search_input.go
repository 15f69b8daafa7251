package tui

import tea "github.com/charmbracelet/bubbletea"

// searchInputHandler edits the incident search box. Every keystroke updates
// the filter so the result list follows the input.
type searchInputHandler struct{}

func (h searchInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "escape", "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filter.SetQuery("")
		m.clampCursors()
		return true, nil
	case "enter", "tab", "down", "up":
		m.searchActive = false
		m.searchInput.Blur()
		return true, nil
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.filter.SetQuery(m.searchInput.Value())
		m.clampCursors()
		return true, cmd
	}
}

func (h searchInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events during search input
}
