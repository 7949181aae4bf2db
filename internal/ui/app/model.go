package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "launchdash/internal/modules/dashboard/dto"
	launchesdto "launchdash/internal/modules/launches/dto"
	"launchdash/internal/ui/components"
	"launchdash/internal/ui/theme"
	chartsview "launchdash/internal/ui/views/charts"
	sitesview "launchdash/internal/ui/views/sites"
	summaryview "launchdash/internal/ui/views/summary"
)

type dashboardPort interface {
	Layout(ctx context.Context) (dashdto.LayoutOutput, error)
	Update(ctx context.Context, changed []string, site string, low, high float64) (dashdto.UpdateOutput, error)
}

type summaryPort interface {
	Summary(ctx context.Context) ([]launchesdto.SiteSummaryOutput, error)
}

type tabID int

const (
	tabDashboard tabID = iota
	tabSummary
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Summary"}

type layoutLoadedMsg struct {
	layout dashdto.LayoutOutput
	err    error
}

// figuresMsg carries the request sequence number so that a slow response
// cannot overwrite a figure from a later request.
type figuresMsg struct {
	seq     int
	outputs map[string]dashdto.FigureOutput
	err     error
}

type keyMap struct {
	Tab      key.Binding
	LowDown  key.Binding
	LowUp    key.Binding
	HighDown key.Binding
	HighUp   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Search   key.Binding
	Navigate key.Binding
	Scroll   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		LowDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[ ]", "low bound -/+ step")),
		LowUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("[ ]", "low bound -/+ step")),
		HighDown: key.NewBinding(key.WithKeys("{"), key.WithHelp("{ }", "high bound -/+ step")),
		HighUp:   key.NewBinding(key.WithKeys("}"), key.WithHelp("{ }", "high bound -/+ step")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search sites")),
		Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "pick site")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll charts")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Search, k.Scroll},
		{k.LowDown, k.HighDown, k.Reset},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// Model is the root Bubble Tea model. Widget state lives here; every change
// goes through the dashboard's reactive Update binding.
type Model struct {
	dashboard dashboardPort

	sitesView   sitesview.Model
	chartsView  chartsview.Model
	summaryView summaryview.Model

	layout  dashdto.LayoutOutput
	loaded  bool
	site    string
	low     int
	high    int
	seq     int
	applied map[string]int

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(dashboard dashboardPort, summary summaryPort) Model {
	return Model{
		dashboard:   dashboard,
		sitesView:   sitesview.New(),
		chartsView:  chartsview.New("success-pie-chart", "success-payload-scatter-chart"),
		summaryView: summaryview.New(summary),
		activeTab:   tabDashboard,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "loading dataset",
		applied:     map[string]int{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadLayoutCmd(), m.summaryView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case layoutLoadedMsg:
		if msg.err != nil {
			m.status = "layout: " + msg.err.Error()
			return m, nil
		}
		m.layout = msg.layout
		m.loaded = true
		m.chartsView = chartsview.New(msg.layout.PieID, msg.layout.ScatterID)
		m.propagateSize()
		m.resetState()
		sites := make([]string, 0, len(msg.layout.Dropdown.Options))
		for _, o := range msg.layout.Dropdown.Options {
			sites = append(sites, o.Value)
		}
		m.palette.SetSites(sites)
		m.status = "ready"
		cmd := tea.Batch(m.sitesView.SetOptions(msg.layout.Dropdown), m.updateCmd(nil))
		return m, cmd

	case figuresMsg:
		if msg.err != nil {
			if msg.seq == m.seq {
				m.status = "update: " + msg.err.Error()
			}
			return m, nil
		}
		fresh := make(map[string]dashdto.FigureOutput, len(msg.outputs))
		for id, fig := range msg.outputs {
			if msg.seq > m.applied[id] {
				fresh[id] = fig
				m.applied[id] = msg.seq
			}
		}
		m.chartsView.Apply(fresh)
		return m, nil

	case sitesview.SelectedMsg:
		if msg.Value == m.site {
			return m, nil
		}
		m.site = msg.Value
		m.status = "site: " + m.siteLabel()
		cmd := m.updateCmd([]string{m.layout.Dropdown.ID})
		return m, cmd

	case summaryview.LoadedMsg:
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabDashboard && m.sitesView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "[", "]", "{", "}":
			if m.activeTab == tabDashboard && m.loaded {
				cmd := m.nudgeRange(msg.String())
				return m, cmd
			}
		case "r":
			if m.activeTab == tabDashboard && m.loaded {
				cmd := m.reset()
				return m, cmd
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.chartsView, cmd = m.chartsView.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.sitesView, cmd = m.sitesView.Update(msg)
	case tabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabSummary:
		content = m.summaryView.View()
	default:
		content = m.dashboardView(contentH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) dashboardView(height int) string {
	sitesW := m.sitesWidth()
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.sitesView.View(),
		m.renderSlider(sitesW),
	)
	right := theme.Pane.Width(m.width - sitesW - 2).Height(height - 2).Render(m.chartsView.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(sitesW).Render(left), right)
}

func (m Model) renderSlider(width int) string {
	if !m.loaded {
		return ""
	}
	s := m.layout.Slider
	track := max(width-4, 10)
	span := float64(s.Max - s.Min)
	lo := int(float64(m.low-s.Min) / span * float64(track-1))
	hi := int(float64(m.high-s.Min) / span * float64(track-1))
	var sb strings.Builder
	for i := 0; i < track; i++ {
		switch {
		case i == lo || i == hi:
			sb.WriteString(theme.Hot.Render("●"))
		case i > lo && i < hi:
			sb.WriteString(theme.Success.Render("━"))
		default:
			sb.WriteString(theme.Muted.Render("─"))
		}
	}
	return fmt.Sprintf("%s\n%s\n%s",
		theme.Title.Render(s.Label),
		sb.String(),
		theme.Muted.Render(fmt.Sprintf("%d - %d kg", m.low, m.high)),
	)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	title := "launchdash"
	if m.loaded {
		title = m.layout.Title
	}
	bar := title + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  [ ] { }:range  r:reset  :::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "site":
		if len(parts) < 2 {
			m.status = "usage: site <name>"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if !m.sitesView.Select(name) {
			m.status = "unknown site: " + name
			return m, nil
		}
		m.site = m.sitesView.Selected()
		m.status = "site: " + m.siteLabel()
		cmd := m.updateCmd([]string{m.layout.Dropdown.ID})
		return m, cmd

	case "range":
		if len(parts) != 3 {
			m.status = "usage: range <low> <high>"
			return m, nil
		}
		low, errLow := strconv.Atoi(parts[1])
		high, errHigh := strconv.Atoi(parts[2])
		if errLow != nil || errHigh != nil {
			m.status = "range bounds must be integers"
			return m, nil
		}
		m.low = m.clamp(low)
		m.high = m.clamp(high)
		m.status = fmt.Sprintf("payload %d - %d kg", m.low, m.high)
		cmd := m.updateCmd([]string{m.layout.Slider.ID})
		return m, cmd

	case "reset":
		cmd := m.reset()
		return m, cmd

	case "summary":
		m.activeTab = tabSummary
		return m, nil

	case "dashboard":
		m.activeTab = tabDashboard
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m *Model) nudgeRange(k string) tea.Cmd {
	step := m.layout.Slider.Step
	switch k {
	case "[":
		m.low = m.clamp(m.low - step)
	case "]":
		m.low = min(m.clamp(m.low+step), m.high)
	case "{":
		m.high = max(m.clamp(m.high-step), m.low)
	case "}":
		m.high = m.clamp(m.high + step)
	}
	m.status = fmt.Sprintf("payload %d - %d kg", m.low, m.high)
	return m.updateCmd([]string{m.layout.Slider.ID})
}

func (m *Model) reset() tea.Cmd {
	m.resetState()
	m.sitesView.Select(m.site)
	m.status = "filters reset"
	return m.updateCmd(nil)
}

func (m *Model) resetState() {
	m.site = m.layout.Dropdown.Value
	m.low = m.layout.Slider.Value[0]
	m.high = m.layout.Slider.Value[1]
}

func (m Model) clamp(v int) int {
	return max(m.layout.Slider.Min, min(m.layout.Slider.Max, v))
}

func (m Model) siteLabel() string {
	for _, o := range m.layout.Dropdown.Options {
		if o.Value == m.site {
			return o.Label
		}
	}
	return m.site
}

func (m Model) sitesWidth() int {
	return max(m.width*3/10, 24)
}

func (m *Model) propagateSize() {
	contentH := max(m.height-4, 1)
	sitesW := m.sitesWidth()
	m.sitesView, _ = m.sitesView.Update(tea.WindowSizeMsg{Width: sitesW, Height: max(contentH-4, 3)})
	m.chartsView, _ = m.chartsView.Update(tea.WindowSizeMsg{Width: m.width - sitesW - 4, Height: max(contentH-2, 1)})
	m.summaryView, _ = m.summaryView.Update(tea.WindowSizeMsg{Width: m.width, Height: contentH})
}

func (m Model) loadLayoutCmd() tea.Cmd {
	return func() tea.Msg {
		layout, err := m.dashboard.Layout(context.Background())
		return layoutLoadedMsg{layout: layout, err: err}
	}
}

func (m *Model) updateCmd(changed []string) tea.Cmd {
	m.seq++
	seq, dashboard := m.seq, m.dashboard
	site, low, high := m.site, float64(m.low), float64(m.high)
	return func() tea.Msg {
		out, err := dashboard.Update(context.Background(), changed, site, low, high)
		return figuresMsg{seq: seq, outputs: out.Outputs, err: err}
	}
}
