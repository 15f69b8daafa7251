package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

const nodeBoxWidth = 20

// renderTelemetryPanel renders the pipeline diagram and the note cards.
func (m *DashboardModel) renderTelemetryPanel(width, height int) string {
	title := lipgloss.NewStyle().Foreground(ColorGreen).Render("●") + " " + titleStyle.Render("Live Telemetry Pipeline")
	flow := sectionStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.renderPipeline(width-4)))

	notes := m.renderTelemetryNotes(width)
	return fitLines(splitLines(lipgloss.JoinVertical(lipgloss.Left, flow, "", notes)), height, 0)
}

// renderPipeline draws the nodes left to right joined by arrows, or top to
// bottom when the row does not fit.
func (m *DashboardModel) renderPipeline(width int) string {
	if len(m.nodes) == 0 {
		return mutedStyle.Render("No telemetry nodes")
	}

	boxes := make([]string, len(m.nodes))
	for i, n := range m.nodes {
		boxes[i] = renderNodeBox(n)
	}

	arrowWidth := 5
	rowWidth := len(boxes)*(nodeBoxWidth+2) + (len(boxes)-1)*arrowWidth
	if rowWidth <= width {
		arrowWidth = max(arrowWidth, (width-len(boxes)*(nodeBoxWidth+2))/max(1, len(boxes)-1))
		arrow := lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(arrowWidth).
			Height(lipgloss.Height(boxes[0])).
			AlignVertical(lipgloss.Center).
			Align(lipgloss.Center).
			Render(strings.Repeat("─", max(1, arrowWidth-2)) + "▶")

		parts := make([]string, 0, 2*len(boxes)-1)
		for i, b := range boxes {
			if i > 0 {
				parts = append(parts, arrow)
			}
			parts = append(parts, b)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	down := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(nodeBoxWidth + 2).
		Align(lipgloss.Center).
		Render("│\n▼")
	parts := make([]string, 0, 2*len(boxes)-1)
	for i, b := range boxes {
		if i > 0 {
			parts = append(parts, down)
		}
		parts = append(parts, b)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderNodeBox(n model.TelemetryNode) string {
	color := nodeColor(n.Kind)
	kind := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(string(n.Kind)))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(nodeBoxWidth).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, kind, truncate(n.Label, nodeBoxWidth)))
}

// renderTelemetryNotes lays the notes out in columns, or stacked when narrow.
func (m *DashboardModel) renderTelemetryNotes(width int) string {
	if len(m.notes) == 0 {
		return ""
	}
	accents := []lipgloss.Color{ColorPurple, ColorBlue, ColorGreen}

	perRow := len(m.notes)
	if width < 90 {
		perRow = 1
	}
	cardWidth := width/perRow - 2

	cards := make([]string, len(m.notes))
	for i, n := range m.notes {
		heading := lipgloss.NewStyle().Foreground(accents[i%len(accents)]).Bold(true).Render(n.Heading)
		cards[i] = cardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			heading,
			mutedStyle.Render(wrapText(n.Body, cardWidth-2)),
		))
	}

	if perRow == 1 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
