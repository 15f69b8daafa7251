package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 22

func (m *DashboardModel) clampSidebarCursor() {
	m.sidebarCursor = clampIndex(m.sidebarCursor, len(Tabs))
}

// moveSidebarCursor moves the cursor and follows it with the active tab.
func (m *DashboardModel) moveSidebarCursor(delta int) {
	m.sidebarCursor += delta
	m.clampSidebarCursor()
	m.SetTab(Tabs[m.sidebarCursor])
}

func (m *DashboardModel) activateSidebarCursor() {
	m.clampSidebarCursor()
	m.SetTab(Tabs[m.sidebarCursor])
}

// buildSidebarLines returns the sidebar rows and a map from row index to
// nav cursor for mouse hit testing.
func (m *DashboardModel) buildSidebarLines(height int) ([]string, map[int]int) {
	rowToCursor := make(map[int]int)
	lines := make([]string, 0, height)

	brand := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorBlue).
		Padding(0, 1).
		Render("✓")
	lines = append(lines, brand+" "+lipgloss.NewStyle().Bold(true).Render("RightsMonitor"))
	lines = append(lines, "")

	for i, t := range Tabs {
		label := fmt.Sprintf("  %s", t.NavLabel())
		if m.activeTab == t {
			label = fmt.Sprintf("> %s", t.NavLabel())
		}
		style := lipgloss.NewStyle().Foreground(ColorGray)
		if m.activeTab == t {
			style = lipgloss.NewStyle().Foreground(ColorBlue)
		}
		if m.activeSection == SectionSidebar && m.sidebarCursor == i {
			style = style.Bold(true).Foreground(ColorWhite)
		}
		rowToCursor[len(lines)] = i
		lines = append(lines, style.Render(label))
	}

	card := []string{
		mutedStyle.Bold(true).Render("COST OPTIMIZATION"),
		titleStyle.Render("$42.10"),
		lipgloss.NewStyle().Foreground(ColorGreen).Render("Burn rate: low"),
	}

	// Pin the cost card to the bottom when there is room for it.
	if gap := height - len(lines) - len(card); gap > 0 {
		for range gap {
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, card...)

	return lines, rowToCursor
}

func (m *DashboardModel) sidebarCursorAtMouseRow(y int) (int, bool) {
	_, rowToCursor := m.buildSidebarLines(m.height - 2)

	// The top border occupies row 0, so the first content row is y=1.
	for _, offset := range []int{-1, 0, -2, 1} {
		row := y + offset
		if row < 0 {
			continue
		}
		if idx, ok := rowToCursor[row]; ok {
			return idx, true
		}
	}
	return 0, false
}

// renderSidebar renders tab navigation in the left sidebar.
func (m *DashboardModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height).
		MaxHeight(height+2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(ColorBlue)
	}

	lines, _ := m.buildSidebarLines(height)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
