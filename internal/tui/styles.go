package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// Palette shared by every panel and modal.
var (
	ColorBlue   = lipgloss.Color("#4285F4")
	ColorGray   = lipgloss.Color("#6B7280")
	ColorNavy   = lipgloss.Color("#1E293B")
	ColorWhite  = lipgloss.Color("#F8FAFC")
	ColorRed    = lipgloss.Color("#EF4444")
	ColorOrange = lipgloss.Color("#F97316")
	ColorGreen  = lipgloss.Color("#22C55E")
	ColorYellow = lipgloss.Color("#EAB308")
	ColorPurple = lipgloss.Color("#A855F7")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(ColorBlue)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(ColorBlue)
)

// severityColor returns the badge color of an incident severity.
func severityColor(s model.Severity) lipgloss.Color {
	switch s {
	case model.SeverityCritical:
		return ColorRed
	case model.SeverityHigh:
		return ColorOrange
	case model.SeverityMedium:
		return ColorYellow
	case model.SeverityLow:
		return ColorBlue
	default:
		return ColorGray
	}
}

// statusColor returns the color of an incident status label.
func statusColor(s model.IncidentStatus) lipgloss.Color {
	switch s {
	case model.StatusOpen:
		return ColorRed
	case model.StatusInvestigating:
		return ColorYellow
	case model.StatusResolved:
		return ColorGreen
	default:
		return ColorGray
	}
}

// ruleStatusColor returns the badge color of a data-quality rule status.
func ruleStatusColor(s model.RuleStatus) lipgloss.Color {
	switch s {
	case model.RuleCritical:
		return ColorRed
	case model.RuleWarning:
		return ColorOrange
	case model.RuleHealthy:
		return ColorGreen
	default:
		return ColorGray
	}
}

// nodeColor returns the accent color of a telemetry node.
func nodeColor(k model.NodeKind) lipgloss.Color {
	switch k {
	case model.NodeSource:
		return ColorBlue
	case model.NodeMiddleware:
		return ColorPurple
	case model.NodeAggregator:
		return ColorYellow
	case model.NodeSink:
		return ColorGreen
	default:
		return ColorGray
	}
}

// badge renders text as a colored pill.
func badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0B0F19")).
		Background(color).
		Bold(true).
		Padding(0, 1).
		Render(text)
}
