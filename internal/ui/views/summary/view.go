package summary

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	launchesdto "launchdash/internal/modules/launches/dto"
	"launchdash/internal/platform/format"
	"launchdash/internal/ui/theme"
)

type SummaryPort interface {
	Summary(ctx context.Context) ([]launchesdto.SiteSummaryOutput, error)
}

type LoadedMsg struct {
	Rows []launchesdto.SiteSummaryOutput
	Err  error
}

// Model is the per-site statistics tab.
type Model struct {
	port     SummaryPort
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port SummaryPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		return m, nil
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.viewport.SetContent(theme.Failure.Render("summary: " + msg.Err.Error()))
			return m, nil
		}
		m.viewport.SetContent(Render(msg.Rows))
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading summary…")
	}
	return m.viewport.View()
}

// Render formats the summary rows as a terminal table.
func Render(rows []launchesdto.SiteSummaryOutput) string {
	t := format.NewTable(format.Terminal, "Site", "Launches", "Successes", "Failures", "Success rate", "Payload kg")
	t.AlignRight(2, 3, 4, 5)
	var launches, successes, failures int
	for _, r := range rows {
		t.Row(r.Site, r.Launches, r.Successes, r.Failures, fmt.Sprintf("%.1f%%", r.SuccessRate*100), payloadRange(r))
		launches += r.Launches
		successes += r.Successes
		failures += r.Failures
	}
	t.Footer("Total", launches, successes, failures, "", "")
	return t.String()
}

func payloadRange(r launchesdto.SiteSummaryOutput) string {
	if math.IsNaN(r.PayloadMin) || math.IsNaN(r.PayloadMax) {
		return "-"
	}
	return fmt.Sprintf("%g..%g", r.PayloadMin, r.PayloadMax)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.port.Summary(context.Background())
		return LoadedMsg{Rows: rows, Err: err}
	}
}
