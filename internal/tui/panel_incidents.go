package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// renderIncidentsPanel renders the filter bar, the result count, and the
// incident cards.
func (m *DashboardModel) renderIncidentsPanel(width, height int) string {
	filterBar := m.renderIncidentFilterBar(width)
	visible := m.filteredIncidents()

	results := titleStyle.Render("Results") + " " + mutedStyle.Render(fmt.Sprintf("(%d)", len(visible)))
	top := lipgloss.JoinVertical(lipgloss.Left, filterBar, results)

	listHeight := height - lipgloss.Height(top)
	if listHeight <= 0 {
		return top
	}

	if len(visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, top, m.renderIncidentsEmpty(width, listHeight))
	}

	var lines []string
	anchor := 0
	for i, inc := range visible {
		if i == m.incidentCursor {
			anchor = len(lines)
		}
		lines = append(lines, splitLines(m.renderIncidentCard(inc, width-2, i == m.incidentCursor))...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, fitLines(lines, listHeight, anchor))
}

// renderIncidentFilterBar renders the search input and both selectors.
func (m *DashboardModel) renderIncidentFilterBar(width int) string {
	q := m.filter.Query()

	var search string
	switch {
	case m.searchActive:
		search = m.searchInput.View()
	case q.Text != "":
		search = "🔍 " + lipgloss.NewStyle().Foreground(ColorYellow).Render(q.Text) + mutedStyle.Render("  (/ to edit)")
	default:
		search = mutedStyle.Render("🔍 " + m.searchInput.Placeholder + "  (/)")
	}

	sevLabel := "All Severities"
	if q.Severity != nil {
		sevLabel = string(*q.Severity)
	}
	statusLabel := "All Statuses"
	if q.Status != nil {
		statusLabel = string(*q.Status)
	}

	selector := func(key, label string, set bool) string {
		style := lipgloss.NewStyle().Foreground(ColorWhite)
		if set {
			style = style.Foreground(ColorBlue).Bold(true)
		}
		return mutedStyle.Render(key+" ") + style.Render("["+label+" ▾]")
	}

	controls := selector("s", sevLabel, q.Severity != nil) + "  " + selector("t", statusLabel, q.Status != nil)
	if m.filter.Active() {
		controls += "  " + lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("x: Reset")
	}

	style := sectionStyle.Width(width - 2)
	if m.searchActive {
		style = activeSectionStyle.Width(width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, search, controls))
}

// renderIncidentsEmpty renders the no-results state.
func (m *DashboardModel) renderIncidentsEmpty(width, height int) string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		mutedStyle.Render("No incidents match your current filters"),
		"",
		lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("Press x to clear all filters"),
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Width(width-2).
		Padding(1, 0).
		Align(lipgloss.Center).
		Render(block)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, box)
}

// renderIncidentCard renders one incident with its analysis area.
func (m *DashboardModel) renderIncidentCard(inc model.Incident, width int, selected bool) string {
	inner := width - 4

	sev := badge(string(inc.Severity), severityColor(inc.Severity))
	status := lipgloss.NewStyle().Foreground(statusColor(inc.Status)).Render(string(inc.Status))
	ts := mutedStyle.Render(inc.Timestamp)
	left := sev + " " + status
	top := left + strings.Repeat(" ", max(1, inner-lipgloss.Width(left)-lipgloss.Width(ts))) + ts

	title := titleStyle.Render(truncate(inc.Title, inner))

	half := inner / 2
	entity := lipgloss.NewStyle().Width(half).Render(
		mutedStyle.Render("Affected Entity") + "\n" + truncate(inc.AffectedArtist, half-1))
	missed := lipgloss.NewStyle().Width(inner - half).Render(
		mutedStyle.Render("Missed Detections") + "\n" + fmt.Sprintf("%d instances", inc.MissedDetections))
	details := lipgloss.JoinHorizontal(lipgloss.Top, entity, missed)

	parts := []string{top, title, details}
	if a := m.renderAnalysis(inc.ID, inner, selected); a != "" {
		parts = append(parts, a)
	}

	style := cardStyle.Width(width)
	if selected {
		style = selectedCardStyle.Width(width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderAnalysis renders the card's spinner, result, or action hint.
func (m *DashboardModel) renderAnalysis(id string, width int, selected bool) string {
	if m.analyzing[id] {
		return m.spinner.View() + " " + lipgloss.NewStyle().Foreground(ColorBlue).Render("Gemini Thinking...")
	}

	if a, ok := m.analyses[id]; ok {
		heading := func(text string, color lipgloss.Color) string {
			return lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(text))
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			heading("Root Cause", ColorBlue),
			wrapText(a.RootCause, width-4),
			heading("Suggested Remediation", ColorGreen),
			wrapText(a.Remediation, width-4),
		)
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBlue).
			Padding(0, 1).
			Width(width - 2).
			Render(body)
	}

	if selected {
		return lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("a: AI Root Cause Analysis")
	}
	return ""
}
