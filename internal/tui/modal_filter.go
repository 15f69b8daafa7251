package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// FilterPickerModal lists the choices of one incident filter. Enter applies
// the highlighted choice; ESC leaves the filter unchanged.
type FilterPickerModal struct {
	id       string
	title    string
	options  []string
	current  int // index of the active choice; 0 is "All"
	selected int
	apply    func(idx int) tea.Cmd
}

// NewSeverityPickerModal builds the severity picker.
func NewSeverityPickerModal(m *DashboardModel) *FilterPickerModal {
	options := []string{"All Severities"}
	for _, s := range model.Severities {
		options = append(options, string(s))
	}

	current := 0
	if s := m.filter.Query().Severity; s != nil {
		current = s.Rank() + 1
	}

	return &FilterPickerModal{
		id:       "severityfilter",
		title:    "Filter by Severity",
		options:  options,
		current:  current,
		selected: current,
		apply: func(idx int) tea.Cmd {
			var sev *model.Severity
			if idx > 0 {
				s := model.Severities[idx-1]
				sev = &s
			}
			return actionMsg(ActionMsg{Action: ActionSetSeverity, Payload: sev})
		},
	}
}

// NewStatusPickerModal builds the status picker.
func NewStatusPickerModal(m *DashboardModel) *FilterPickerModal {
	options := []string{"All Statuses"}
	for _, s := range model.Statuses {
		options = append(options, string(s))
	}

	current := 0
	if s := m.filter.Query().Status; s != nil {
		for i, v := range model.Statuses {
			if v == *s {
				current = i + 1
			}
		}
	}

	return &FilterPickerModal{
		id:       "statusfilter",
		title:    "Filter by Status",
		options:  options,
		current:  current,
		selected: current,
		apply: func(idx int) tea.Cmd {
			var status *model.IncidentStatus
			if idx > 0 {
				s := model.Statuses[idx-1]
				status = &s
			}
			return actionMsg(ActionMsg{Action: ActionSetStatus, Payload: status})
		},
	}
}

func (p *FilterPickerModal) ID() string { return p.id }

func (p *FilterPickerModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
			return false, nil
		case "down", "j":
			if p.selected < len(p.options)-1 {
				p.selected++
			}
			return false, nil
		case "home":
			p.selected = 0
			return false, nil
		case "enter", " ":
			return true, p.apply(p.selected)
		case "escape", "esc":
			return true, nil
		}
		return false, nil

	case tea.MouseMsg:
		return false, nil // swallow mouse events
	}
	return false, nil
}

func (p *FilterPickerModal) View(width, height int) string {
	return renderPickerModal(p.title, p.options, p.selected, p.current, width, height)
}
