package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// renderAlertsPanel renders the data-quality header and the rule cards.
func (m *DashboardModel) renderAlertsPanel(width, height int) string {
	header := m.renderAlertsHeader(width)

	listHeight := height - lipgloss.Height(header)
	if listHeight <= 0 {
		return header
	}
	if len(m.rules) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render("No data-quality rules configured"))
	}

	var lines []string
	anchor := 0
	for i, r := range m.rules {
		if i == m.ruleCursor {
			anchor = len(lines)
		}
		lines = append(lines, splitLines(m.renderRuleCard(r, width-2, i == m.ruleCursor))...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, fitLines(lines, listHeight, anchor))
}

func (m *DashboardModel) renderAlertsHeader(width int) string {
	title := titleStyle.Render("Data Quality Monitoring")
	updated := mutedStyle.Render("Last Update: " + m.lastUpdate.Format("15:04:05"))
	row1 := title + strings.Repeat(" ", max(1, width-lipgloss.Width(title)-lipgloss.Width(updated)-1)) + updated

	subtitle := mutedStyle.Render("Rules engine for input integrity and anomaly detection.")
	action := "r: Re-run Validation"
	if m.rerunning {
		action = m.spinner.View() + " Re-running..."
	}
	button := lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorBlue).
		Bold(true).
		Padding(0, 1).
		Render(action)
	row2 := subtitle + strings.Repeat(" ", max(1, width-lipgloss.Width(subtitle)-lipgloss.Width(button)-1)) + button

	return lipgloss.JoinVertical(lipgloss.Left, row1, row2, "")
}

// renderRuleCard renders one rule with its gauge and, when expanded, its
// history and trigger events.
func (m *DashboardModel) renderRuleCard(r model.DataQualityRule, width int, selected bool) string {
	inner := width - 4
	color := ruleStatusColor(r.Status)
	expanded := m.expandedRule == r.ID

	icon := "✓"
	if r.Breached() {
		icon = "⚠"
	}
	name := lipgloss.NewStyle().Foreground(color).Render(icon) + " " + titleStyle.Render(r.Name)
	status := badge(string(r.Status), color)
	row1 := name + strings.Repeat(" ", max(1, inner-lipgloss.Width(name)-lipgloss.Width(status))) + status

	category := mutedStyle.Bold(true).Render(strings.ToUpper(r.Category))
	if expanded {
		id := mutedStyle.Render("ID: " + r.ID)
		category += strings.Repeat(" ", max(1, inner-lipgloss.Width(category)-lipgloss.Width(id))) + id
	}

	threshold := mutedStyle.Render("Threshold: " + r.Threshold)
	currentStyle := lipgloss.NewStyle().Foreground(ColorWhite)
	if r.Breached() {
		currentStyle = lipgloss.NewStyle().Foreground(color).Bold(true)
	}
	current := currentStyle.Render("Current: " + formatRuleValue(r.CurrentValue) + r.Unit)
	row3 := threshold + strings.Repeat(" ", max(1, inner-lipgloss.Width(threshold)-lipgloss.Width(current))) + current

	parts := []string{row1, category, "", row3, renderGauge(r, inner, color)}
	if expanded {
		parts = append(parts, "", m.renderRuleExpansion(r, inner, color))
	}

	style := cardStyle.Width(width)
	switch {
	case selected:
		style = selectedCardStyle.Width(width)
	case r.Breached():
		style = cardStyle.BorderForeground(color).Width(width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderGauge draws the rule's progress toward its threshold.
func renderGauge(r model.DataQualityRule, width int, color lipgloss.Color) string {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(r.Progress() / 100)
}

// renderRuleExpansion renders the history sparkline, trigger events, and
// the rule's detailed context.
func (m *DashboardModel) renderRuleExpansion(r model.DataQualityRule, width int, color lipgloss.Color) string {
	h, ok := m.histories[r.ID]
	if !ok {
		return m.spinner.View() + mutedStyle.Render(" Loading history...")
	}

	heading := func(text string) string {
		return mutedStyle.Bold(true).Render(strings.ToUpper(text))
	}

	values := make([]float64, len(h.Samples))
	for i, s := range h.Samples {
		values[i] = s.Value
	}
	// Samples run newest first; draw oldest on the left.
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}

	historyTitle := heading("Metric History (24h)")
	agg := mutedStyle.Render("Aggregation: 2h Mean")
	history := lipgloss.JoinVertical(lipgloss.Left,
		historyTitle+strings.Repeat(" ", max(1, width-lipgloss.Width(historyTitle)-lipgloss.Width(agg)))+agg,
		renderSparkline(values, width, 3, color),
	)

	eventLines := []string{heading("Recent Trigger Events")}
	for _, ev := range h.Events {
		evColor := ColorRed
		if ev.Status == model.RuleHealthy {
			evColor = ColorGreen
		}
		line := fmt.Sprintf("%-8s Value: %s%s", ev.Time, strconv.FormatFloat(ev.Value, 'f', 2, 64), r.Unit)
		label := lipgloss.NewStyle().Foreground(evColor).Render(string(ev.Status))
		eventLines = append(eventLines, line+strings.Repeat(" ", max(1, width-lipgloss.Width(line)-lipgloss.Width(label)))+label)
	}

	detail := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("DETAILED CONTEXT"),
			lipgloss.NewStyle().Italic(true).Render(wrapText(r.Description, width-4)),
		))

	return lipgloss.JoinVertical(lipgloss.Left, history, "", lipgloss.JoinVertical(lipgloss.Left, eventLines...), "", detail)
}

// formatRuleValue prints a value with the shortest exact representation.
func formatRuleValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
