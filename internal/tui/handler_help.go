package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// helpScrollKeys are the paging keys only the help modal uses.
type helpScrollKeys struct {
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

func defaultHelpScrollKeys() helpScrollKeys {
	return helpScrollKeys{
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// HelpModal shows every dashboard binding in a scrollable pane. It closes on
// the dashboard's own help, escape and quit keys, so a remapped KeyMap
// carries over without changes here.
type HelpModal struct {
	ctx      ModalContext
	keys     KeyMap
	scroll   helpScrollKeys
	viewport viewport.Model
	content  func() string
}

func NewHelpModal(m *DashboardModel) *HelpModal {
	return &HelpModal{
		ctx:      m.modalContext(),
		keys:     m.keys,
		scroll:   defaultHelpScrollKeys(),
		viewport: viewport.New(80, 20),
		// Rendered on every frame so the data source line stays current.
		content: m.renderHelpModalContent,
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Help, h.keys.Escape, h.keys.Quit):
			return true, nil
		case key.Matches(msg, h.keys.Up):
			h.viewport.ScrollUp(1)
		case key.Matches(msg, h.keys.Down):
			h.viewport.ScrollDown(1)
		case key.Matches(msg, h.scroll.PageUp):
			h.viewport.HalfPageUp()
		case key.Matches(msg, h.scroll.PageDown):
			h.viewport.HalfPageDown()
		case key.Matches(msg, h.scroll.Top):
			h.viewport.GotoTop()
		case key.Matches(msg, h.scroll.Bottom):
			h.viewport.GotoBottom()
		default:
			var cmd tea.Cmd
			h.viewport, cmd = h.viewport.Update(msg)
			return false, cmd
		}
		return false, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		up := msg.Button == tea.MouseButtonWheelUp
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			return false, nil
		}
		if h.ctx.ReverseScrollWheel {
			up = !up
		}
		if up {
			h.viewport.ScrollUp(1)
		} else {
			h.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderScrollModal(&h.viewport, "Help & Documentation", h.content(), h.footer(), width, height)
}

// footer lists the modal's keys and how far the pane is scrolled.
func (h *HelpModal) footer() string {
	hints := []string{
		h.keys.Up.Help().Key + "/" + h.keys.Down.Help().Key + ": Scroll",
		h.scroll.PageUp.Help().Key + "/" + h.scroll.PageDown.Help().Key + ": Page",
		h.scroll.Top.Help().Key + "/" + h.scroll.Bottom.Help().Key + ": Top/Bottom",
		h.keys.Escape.Help().Key + ": Close",
	}
	return fmt.Sprintf("%s | %3.0f%%", strings.Join(hints, " | "), h.viewport.ScrollPercent()*100)
}
