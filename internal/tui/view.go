package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight     = 2 // title row plus rule
	statusLineHeight = 1
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	if m.sidebarVisible {
		w := m.width - sidebarWidth
		if w < 40 {
			w = 40
		}
		return w
	}
	return m.width
}

// bodyHeight returns the rows left for the active panel.
func (m *DashboardModel) bodyHeight() int {
	return max(1, m.height-headerHeight-statusLineHeight)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < 20 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x20."
	}

	contentWidth := m.contentWidth()
	bodyHeight := m.bodyHeight()

	header := m.renderHeader(contentWidth)

	var body string
	if !m.loaded {
		body = m.renderLoadingPlaceholder(contentWidth, bodyHeight)
	} else {
		body = m.renderActivePanel(contentWidth, bodyHeight)
	}
	body = lipgloss.NewStyle().
		Width(contentWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	contentArea := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusLine())

	if !m.sidebarVisible {
		return contentArea
	}
	sidebar := m.renderSidebar(m.height - 2)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, contentArea)
}

// renderActivePanel dispatches to the panel of the active tab.
func (m *DashboardModel) renderActivePanel(width, height int) string {
	switch m.activeTab {
	case TabIncidents:
		return m.renderIncidentsPanel(width, height)
	case TabAlerts:
		return m.renderAlertsPanel(width, height)
	case TabTelemetry:
		return m.renderTelemetryPanel(width, height)
	default:
		return m.renderOverviewPanel(width, height)
	}
}

// renderHeader renders the tab title and the region badge.
func (m *DashboardModel) renderHeader(width int) string {
	title := titleStyle.Render(m.activeTab.Title())

	dot := lipgloss.NewStyle().Foreground(ColorGreen).Render("●")
	region := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("GCP Region: " + m.region)
	right := dot + " " + region

	gap := max(1, width-lipgloss.Width(title)-lipgloss.Width(right)-2)
	row := " " + title + strings.Repeat(" ", gap) + right + " "

	rule := lipgloss.NewStyle().
		Foreground(ColorNavy).
		Render(strings.Repeat("─", width))

	return lipgloss.JoinVertical(lipgloss.Left, row, rule)
}

// fitLines returns the window of lines of the given height that keeps the
// anchor row visible, padded to height.
func fitLines(lines []string, height, anchor int) string {
	if height <= 0 {
		return ""
	}
	start := 0
	if len(lines) > height {
		start = anchor - height/3
		start = max(0, min(start, len(lines)-height))
	}
	end := min(len(lines), start+height)
	return strings.Join(lines[start:end], "\n")
}

// splitLines splits a rendered block into rows.
func splitLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// wrapText wraps text to the given width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// truncate shortens plain text to width cells with a trailing ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
