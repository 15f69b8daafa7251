package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelpModalContent lists every key binding by group.
func (m *DashboardModel) renderHelpModalContent() string {
	k := m.keys
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"NAVIGATION", []key.Binding{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.NextTab, k.PrevTab, k.FocusSidebar, k.ToggleSidebar, k.Up, k.Down}},
		{"INCIDENTS", []key.Binding{k.Search, k.NextSeverity, k.PrevSeverity, k.NextStatus, k.PrevStatus, k.SeverityFilter, k.StatusFilter, k.ClearFilters, k.Analyze}},
		{"DATA QUALITY", []key.Binding{k.Enter, k.Rerun}},
		{"GENERAL", []key.Binding{k.Help, k.Escape, k.Quit, k.ForceQuit}},
	}

	var b strings.Builder
	b.WriteString("RightsMonitor Dashboard Help\n\n")
	for _, g := range groups {
		b.WriteString(g.title + ":\n")
		for _, binding := range g.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-14s - %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("ANALYSIS:\n")
	b.WriteString("  Each incident card runs its own root-cause analysis. While a card\n")
	b.WriteString("  shows \"Gemini Thinking...\" pressing a again is ignored. When the\n")
	b.WriteString("  analysis service is unreachable a generic diagnosis is shown.\n\n")

	b.WriteString("DATA SOURCE:\n")
	fmt.Fprintf(&b, "  Source: %s\n", m.dataSource)
	fmt.Fprintf(&b, "  Region: %s\n", m.region)
	return b.String()
}
