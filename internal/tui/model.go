package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thobs40/LLM-Rights-Monitor/internal/incident"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
)

// Tab is one of the dashboard's top-level views.
type Tab int

const (
	TabOverview Tab = iota
	TabIncidents
	TabAlerts
	TabTelemetry
)

// Tabs lists every tab in sidebar order.
var Tabs = []Tab{TabOverview, TabIncidents, TabAlerts, TabTelemetry}

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "overview"
	case TabIncidents:
		return "incidents"
	case TabAlerts:
		return "alerts"
	case TabTelemetry:
		return "telemetry"
	default:
		return "unknown"
	}
}

// NavLabel is the sidebar label of the tab.
func (t Tab) NavLabel() string {
	switch t {
	case TabOverview:
		return "Dashboard"
	case TabIncidents:
		return "Incidents"
	case TabAlerts:
		return "Data Quality"
	case TabTelemetry:
		return "Telemetry Flow"
	default:
		return ""
	}
}

// Title is the header text shown while the tab is active.
func (t Tab) Title() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabIncidents:
		return "Incidents"
	case TabAlerts:
		return "Data Quality Rules"
	case TabTelemetry:
		return "Telemetry"
	default:
		return ""
	}
}

// Section identifies which part of the layout has keyboard focus.
type Section int

const (
	SectionContent Section = iota // active tab panel
	SectionSidebar                // tab navigation
)

// IncidentsState holds the incidents tab: filter, search input, selection,
// and per-card analysis state keyed by incident ID.
type IncidentsState struct {
	filter         incident.FilterState
	searchInput    textinput.Model
	searchActive   bool
	incidentCursor int

	analyzing map[string]bool
	analyses  map[string]rca.Analysis
}

// QualityState holds the data-quality tab's selection and expansion.
type QualityState struct {
	ruleCursor   int
	expandedRule string
	histories    map[string]model.RuleHistory
	rerunning    bool
}

// SidebarState holds sidebar navigation state.
type SidebarState struct {
	sidebarCursor  int
	sidebarVisible bool
}

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// NavigationState holds the active tab and focused section.
type NavigationState struct {
	activeTab     Tab
	activeSection Section
}

// DataState holds the latest snapshot read from the provider.
type DataState struct {
	incidents []model.Incident
	metrics   []model.MetricPoint
	kpis      []model.KPI
	rules     []model.DataQualityRule
	nodes     []model.TelemetryNode
	notes     []model.TelemetryNote

	loaded       bool
	loadInFlight bool
	lastUpdate   time.Time
}

// Options configures a DashboardModel.
type Options struct {
	Region             string
	DataSource         string // shown in the status line
	RefreshInterval    time.Duration
	ReverseScrollWheel bool
	Logger             *slog.Logger
}

// DashboardModel represents the main TUI model.
// Sub-state is organized into embedded structs for readability.
type DashboardModel struct {
	IncidentsState
	QualityState
	SidebarState
	ModalStackState
	NavigationState
	DataState

	width  int
	height int

	keys KeyMap

	provider model.Provider
	analyzer rca.Analyzer
	logger   *slog.Logger

	// Cancelled on quit so in-flight analyses and loads stop.
	ctx    context.Context
	cancel context.CancelFunc

	region             string
	dataSource         string
	refreshInterval    time.Duration
	reverseScrollWheel bool

	spinner  spinner.Model
	spinning bool

	// Last provider error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time

	inlineHandlers []inlineHandlerEntry
}

// TickMsg represents periodic refreshes.
type TickMsg time.Time

// NewDashboardModel creates a new dashboard model reading from provider.
func NewDashboardModel(provider model.Provider, analyzer rca.Analyzer, opts Options) *DashboardModel {
	if opts.Region == "" {
		opts.Region = model.DefaultRegion
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search by artist or incident title..."
	searchInput.CharLimit = 200
	searchInput.Prompt = "🔍 "

	ctx, cancel := context.WithCancel(context.Background())

	m := &DashboardModel{
		IncidentsState: IncidentsState{
			searchInput: searchInput,
			analyzing:   make(map[string]bool),
			analyses:    make(map[string]rca.Analysis),
		},
		QualityState: QualityState{
			histories: make(map[string]model.RuleHistory),
		},
		SidebarState: SidebarState{
			sidebarVisible: true,
		},
		NavigationState: NavigationState{
			activeTab:     TabOverview,
			activeSection: SectionContent,
		},

		keys:               DefaultKeyMap(),
		provider:           provider,
		analyzer:           analyzer,
		logger:             opts.Logger.With("component", "tui"),
		ctx:                ctx,
		cancel:             cancel,
		region:             opts.Region,
		dataSource:         opts.DataSource,
		refreshInterval:    opts.RefreshInterval,
		reverseScrollWheel: opts.ReverseScrollWheel,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorBlue)),
		),
	}

	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(m *DashboardModel) bool { return m.searchActive }, handler: searchInputHandler{}},
	}

	return m
}

// ActiveTab returns the tab currently shown.
func (m *DashboardModel) ActiveTab() Tab { return m.activeTab }

// SetTab selects a tab unconditionally.
func (m *DashboardModel) SetTab(t Tab) {
	if t < TabOverview || t > TabTelemetry {
		return
	}
	m.activeTab = t
	m.sidebarCursor = int(t)
}

func (m *DashboardModel) nextTab() {
	m.SetTab(Tab((int(m.activeTab) + 1) % len(Tabs)))
}

func (m *DashboardModel) prevTab() {
	m.SetTab(Tab((int(m.activeTab) - 1 + len(Tabs)) % len(Tabs)))
}

// Filter exposes the incident filter for callers that drive the dashboard
// programmatically.
func (m *DashboardModel) Filter() *incident.FilterState { return &m.filter }

// filteredIncidents applies the current filter to the loaded incidents.
func (m *DashboardModel) filteredIncidents() []model.Incident {
	return m.filter.Apply(m.incidents)
}

// selectedIncident returns the incident under the cursor in the filtered list.
func (m *DashboardModel) selectedIncident() (model.Incident, bool) {
	visible := m.filteredIncidents()
	if m.incidentCursor < 0 || m.incidentCursor >= len(visible) {
		return model.Incident{}, false
	}
	return visible[m.incidentCursor], true
}

// selectedRule returns the rule under the cursor.
func (m *DashboardModel) selectedRule() (model.DataQualityRule, bool) {
	if m.ruleCursor < 0 || m.ruleCursor >= len(m.rules) {
		return model.DataQualityRule{}, false
	}
	return m.rules[m.ruleCursor], true
}

// clampCursors keeps selections inside the current collections.
func (m *DashboardModel) clampCursors() {
	m.incidentCursor = clampIndex(m.incidentCursor, len(m.filteredIncidents()))
	m.ruleCursor = clampIndex(m.ruleCursor, len(m.rules))
}

func clampIndex(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// clearFilters resets the incident filter and the search box.
func (m *DashboardModel) clearFilters() {
	m.filter.ClearFilters()
	m.searchInput.SetValue("")
	m.clampCursors()
}

// modalContext builds the read-only context handed to modals.
func (m *DashboardModel) modalContext() ModalContext {
	return ModalContext{ReverseScrollWheel: m.reverseScrollWheel}
}

// Init loads the first snapshot and starts the refresh tick.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return tea.EnableMouseCellMotion() },
		m.startLoad(),
		m.startSpinner(),
	}
	if m.refreshInterval > 0 {
		cmds = append(cmds, m.scheduleTick())
	}
	return tea.Batch(cmds...)
}

func (m *DashboardModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Close cancels in-flight analyses and loads.
func (m *DashboardModel) Close() {
	m.cancel()
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// DashboardView adapts DashboardModel to the Page interface.
type DashboardView struct {
	Model *DashboardModel
}

// NewDashboardView wraps a DashboardModel as a Page.
func NewDashboardView(m *DashboardModel) *DashboardView {
	return &DashboardView{Model: m}
}

func (p *DashboardView) ID() string { return "dashboard" }

func (p *DashboardView) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *DashboardView) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *DashboardView) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}

// Close releases the dashboard's context.
func (p *DashboardView) Close() {
	p.Model.Close()
}
