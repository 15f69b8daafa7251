package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderBranding renders "RightsMonitor" with a blue to green gradient.
func (m *DashboardModel) renderBranding() string {
	colors := []string{
		"#4285F4", "#3A8FE6", "#3299D8", "#2AA3CA", "#22ADBC", "#1AB7AE", "#12C1A0",
		"#0ACB92", "#02D584", "#12D27A", "#22CF70", "#32CC66", "#42C95C",
	}
	name := []rune("RightsMonitor")

	var b strings.Builder
	for i, r := range name {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i%len(colors)])).
			Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	var statusText, leftText, rightText string

	w := m.contentWidth()

	veryNarrow := w < 60
	narrow := w < 80
	medium := w < 120

	sectionName := m.activeTab.NavLabel()
	if m.activeSection == SectionSidebar {
		sectionName = "Sidebar"
	}
	if !m.searchActive {
		if veryNarrow {
			leftText = sectionName[:min(5, len(sectionName))]
		} else {
			leftText = fmt.Sprintf("[%s]", sectionName)
		}
	}

	switch {
	case m.searchActive:
		if narrow {
			statusText = "Enter: Apply • ESC: Clear"
		} else {
			statusText = "Type to filter by artist or title • Enter: Apply • ESC: Clear"
		}
	case m.HasModal():
		statusText = "ESC: Close"
	case m.activeSection == SectionSidebar:
		statusText = "↑↓: Select tab • Enter/Tab: Back to content"
	case m.activeTab == TabIncidents:
		if veryNarrow {
			statusText = "/ • s • t • a • ?"
		} else if narrow {
			statusText = "/: Search • s/t: Filters • a: Analyze • ?: Help"
		} else if medium {
			statusText = "/: Search • s/S: Severity • t/T: Status • x: Reset • a: Analyze • ?: Help"
		} else {
			statusText = "/: Search • s/S: Severity • t/T: Status • Ctrl+f/Ctrl+s: Pickers • x: Reset • ↑↓: Select • a: Analyze • ?: Help • q: Quit"
		}
	case m.activeTab == TabAlerts:
		if veryNarrow {
			statusText = "↑↓ • Enter • r • ?"
		} else if narrow {
			statusText = "Enter: Expand • r: Re-run • ?: Help"
		} else {
			statusText = "↑↓: Select • Enter: Expand • r: Re-run Validation • []: Switch tab • ?: Help • q: Quit"
		}
	default:
		if veryNarrow {
			statusText = "1-4 • [] • ? • q"
		} else if narrow {
			statusText = "?: Help • 1-4: Tabs • q: Quit"
		} else {
			statusText = "?: Help • 1-4/[]: Switch tab • Tab: Sidebar • b: Toggle sidebar • q: Quit"
		}
	}

	var rightParts []string

	// Provider error indicator (auto-clears after 30s).
	if m.lastError != "" && time.Since(m.lastErrorAt) < 30*time.Second {
		errStyle := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color("#FF6666")).
			Faint(true)
		rightParts = append(rightParts, errStyle.Render("data error"))
	}

	if m.dataSource != "" && !veryNarrow {
		dotColor := lipgloss.Color("#44FF44")
		if m.lastError != "" {
			dotColor = lipgloss.Color("#FF4444")
		} else if !m.loaded {
			dotColor = lipgloss.Color("#FFAA00")
		}
		dot := lipgloss.NewStyle().Background(ColorNavy).Foreground(dotColor).Render("●")
		rightParts = append(rightParts, dot+" "+m.dataSource)
	}

	if !narrow && m.refreshInterval > 0 {
		rightParts = append(rightParts, "Refresh: "+formatDuration(m.refreshInterval))
	}

	if w >= 30 {
		rightParts = append(rightParts, m.renderBranding())
	}
	rightText = strings.Join(rightParts, "  ")

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2

	if leftWidth+rightWidth >= w {
		if w < 20 {
			return baseStyle.Width(w).Render(leftText)
		}
		leftWidth = min(10, w/3)
		rightWidth = min(15, w/3)
		rightText = ""
	}

	centerWidth := max(0, w-leftWidth-rightWidth)

	leftStyle := baseStyle.Align(lipgloss.Left).Width(leftWidth)
	centerStyle := baseStyle.Align(lipgloss.Center).Width(centerWidth)
	rightStyle := baseStyle.Align(lipgloss.Right).Width(rightWidth)

	leftText = truncate(leftText, leftWidth)
	statusText = truncate(statusText, centerWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(leftText),
		centerStyle.Render(statusText),
		rightStyle.Render(rightText),
	)
}

// formatDuration renders refresh intervals compactly.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}
