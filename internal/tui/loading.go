package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderLoadingPlaceholder renders the spinner centered in the panel area.
func (m *DashboardModel) renderLoadingPlaceholder(width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := m.spinner.View() + loadingStyle.Render(" Loading...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// busy reports whether anything on screen is waiting on a background command.
func (m *DashboardModel) busy() bool {
	return (m.loadInFlight && !m.loaded) || m.rerunning || len(m.analyzing) > 0
}

// startSpinner starts the spinner tick loop if it is not already running.
func (m *DashboardModel) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
