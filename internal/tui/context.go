package tui

import tea "github.com/charmbracelet/bubbletea"

// ModalContext provides read-only context to modals, replacing direct access
// to *DashboardModel. Modals that need to render delegate to stored render
// callbacks, which capture the dashboard internally.
type ModalContext struct {
	ReverseScrollWheel bool
}

// Action identifies what a modal wants the dashboard to do.
type Action int

const (
	ActionPushModal Action = iota
	ActionSetTab
	ActionSetSeverity
	ActionSetStatus
)

// ActionMsg is returned by modals to communicate with the dashboard without
// mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Cmd.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}
