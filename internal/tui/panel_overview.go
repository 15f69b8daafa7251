package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

const kpiCardHeight = 4 // two content rows plus border

// renderOverviewPanel renders the KPI cards above the two metric charts.
func (m *DashboardModel) renderOverviewPanel(width, height int) string {
	cards := m.renderKPICards(width)
	chartsHeight := height - lipgloss.Height(cards)
	if chartsHeight < 6 {
		return cards
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, m.renderOverviewCharts(width, chartsHeight))
}

// renderKPICards lays the KPIs out in one row, or two rows when narrow.
func (m *DashboardModel) renderKPICards(width int) string {
	if len(m.kpis) == 0 {
		return mutedStyle.Render("No KPIs available")
	}

	perRow := len(m.kpis)
	if width < 80 {
		perRow = 2
	}
	cardWidth := width/perRow - 2

	var rows []string
	for start := 0; start < len(m.kpis); start += perRow {
		end := min(start+perRow, len(m.kpis))
		var cells []string
		for _, k := range m.kpis[start:end] {
			cells = append(cells, renderKPICard(k, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderKPICard(k model.KPI, width int) string {
	changeColor := ColorGreen
	if k.Trend == model.TrendDown {
		changeColor = ColorRed
	}
	change := lipgloss.NewStyle().Foreground(changeColor).Bold(true).Render(k.Change)
	value := titleStyle.Render(k.Value)

	inner := width - 2
	gap := max(1, inner-lipgloss.Width(value)-lipgloss.Width(change))

	body := lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(truncate(k.Label, inner)),
		value+strings.Repeat(" ", gap)+change,
	)
	return cardStyle.Width(width).Render(body)
}

// renderOverviewCharts places the performance and infringement charts side
// by side, or stacked on narrow terminals.
func (m *DashboardModel) renderOverviewCharts(width, height int) string {
	if width >= 100 {
		half := width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPerformanceChart(half, height),
			m.renderInfringementsChart(width-half, height),
		)
	}
	top := height / 2
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPerformanceChart(width, top),
		m.renderInfringementsChart(width, height-top),
	)
}

// chartHeader renders a title with a right-aligned annotation.
func chartHeader(title, note string, width int) string {
	t := titleStyle.Render(title)
	n := mutedStyle.Render(note)
	gap := max(1, width-lipgloss.Width(t)-lipgloss.Width(n))
	return t + strings.Repeat(" ", gap) + n
}

// renderPerformanceChart draws latency and token sparklines over the series.
func (m *DashboardModel) renderPerformanceChart(width, height int) string {
	inner := width - 4
	innerHeight := height - 2

	header := chartHeader("Performance: Latency & Tokens", "Real-time / 24h", inner)
	if len(m.metrics) == 0 {
		return sectionStyle.Width(width - 2).Height(innerHeight).Render(header + "\n" + mutedStyle.Render("No metrics"))
	}

	latency := make([]float64, len(m.metrics))
	tokens := make([]float64, len(m.metrics))
	var latencySum, tokenSum float64
	for i, p := range m.metrics {
		latency[i] = p.Latency
		tokens[i] = p.Tokens
		latencySum += p.Latency
		tokenSum += p.Tokens
	}
	n := float64(len(m.metrics))

	// Header, two captions, and the time axis take four rows.
	sparkHeight := max(1, (innerHeight-4)/2)

	latencyLine := renderSparkline(latency, inner, sparkHeight, ColorBlue)
	tokenLine := renderSparkline(tokens, inner, sparkHeight, ColorPurple)

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Foreground(ColorBlue).Render(fmt.Sprintf("Latency (avg %.0fms)", latencySum/n)),
		latencyLine,
		lipgloss.NewStyle().Foreground(ColorPurple).Render(fmt.Sprintf("Tokens (avg %.0f)", tokenSum/n)),
		tokenLine,
		timeAxis(m.metrics, inner),
	)
	return sectionStyle.Width(width - 2).Height(innerHeight).MaxHeight(height).Render(body)
}

// renderInfringementsChart draws one bar per metric point.
func (m *DashboardModel) renderInfringementsChart(width, height int) string {
	inner := width - 4
	innerHeight := height - 2

	total := 0
	for _, p := range m.metrics {
		total += p.Infringements
	}
	header := chartHeader("Infringements Detected", fmt.Sprintf("Total: %d", total), inner)
	if len(m.metrics) == 0 {
		return sectionStyle.Width(width - 2).Height(innerHeight).Render(header + "\n" + mutedStyle.Render("No metrics"))
	}

	chartHeight := max(2, innerHeight-2)
	barWidth := max(1, (inner-len(m.metrics))/len(m.metrics))

	bc := barchart.New(inner, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	barStyle := lipgloss.NewStyle().Foreground(ColorOrange).Background(ColorOrange)
	for _, p := range m.metrics {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: p.Time, Value: float64(p.Infringements), Style: barStyle},
			},
		})
	}
	bc.Draw()

	body := lipgloss.JoinVertical(lipgloss.Left, header, bc.View(), timeAxis(m.metrics, inner))
	return sectionStyle.Width(width - 2).Height(innerHeight).MaxHeight(height).Render(body)
}

func renderSparkline(values []float64, width, height int, color lipgloss.Color) string {
	sl := sparkline.New(width, height,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(color)),
	)
	sl.PushAll(values)
	sl.Draw()
	return sl.View()
}

// timeAxis labels the first, middle, and last points of the series.
func timeAxis(points []model.MetricPoint, width int) string {
	if len(points) == 0 || width < 10 {
		return ""
	}
	first := points[0].Time
	last := points[len(points)-1].Time
	mid := points[len(points)/2].Time

	gap := width - len(first) - len(mid) - len(last)
	if gap < 2 {
		return mutedStyle.Render(first + strings.Repeat(" ", max(1, width-len(first)-len(last))) + last)
	}
	left := gap / 2
	return mutedStyle.Render(first + strings.Repeat(" ", left) + mid + strings.Repeat(" ", gap-left) + last)
}
