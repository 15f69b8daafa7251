package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// renderScrollModal renders a titled, scrollable modal around vp.
func renderScrollModal(vp *viewport.Model, title, content, status string, width, height int) string {
	modalWidth := width - 8   // 4 chars margin on each side
	modalHeight := height - 4 // 2 lines margin top and bottom

	contentWidth := modalWidth - 4   // Modal borders
	contentHeight := modalHeight - 4 // Header + status

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(wrapText(content, contentWidth))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, mutedStyle.Render(status))

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// renderPickerModal renders a small centered list with the highlighted row
// and the active choice marked.
func renderPickerModal(title string, options []string, selected, current, width, height int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(title),
		"",
	}
	for i, opt := range options {
		mark := "  "
		if i == current {
			mark = "● "
		}
		line := mark + opt
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Background(ColorBlue).
				Bold(true).
				Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", renderModalStatusBar("↑↓: Select", "Enter: Apply", "ESC: Cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderModalStatusBar renders the status bar for modals
func renderModalStatusBar(items ...string) string {
	return mutedStyle.Render(strings.Join(items, " | "))
}
