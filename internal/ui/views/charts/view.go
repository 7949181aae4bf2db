package charts

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "launchdash/internal/modules/dashboard/dto"
	"launchdash/internal/ui/theme"
)

// Model shows the latest pie and scatter figures in a scrollable pane.
type Model struct {
	pieID     string
	scatterID string
	figures   map[string]dashdto.FigureOutput
	viewport  viewport.Model
	width     int
	height    int
}

func New(pieID, scatterID string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(0, 1)
	return Model{
		pieID:     pieID,
		scatterID: scatterID,
		figures:   map[string]dashdto.FigureOutput{},
		viewport:  vp,
	}
}

// Apply merges freshly computed outputs; outputs not present keep their
// previous figure.
func (m *Model) Apply(outputs map[string]dashdto.FigureOutput) {
	for id, fig := range outputs {
		m.figures[id] = fig
	}
	m.viewport.SetContent(m.content())
}

// Figure returns the current figure for an output id.
func (m Model) Figure(id string) (dashdto.FigureOutput, bool) {
	fig, ok := m.figures[id]
	return fig, ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		m.viewport.Width = sz.Width
		m.viewport.Height = sz.Height
		m.viewport.SetContent(m.content())
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) content() string {
	w := max(m.width-4, 40)
	parts := []string{}
	if fig, ok := m.figures[m.pieID]; ok {
		parts = append(parts, Pie(fig, w))
	}
	if fig, ok := m.figures[m.scatterID]; ok {
		parts = append(parts, Scatter(fig, w))
		if pts := Points(fig); pts != "" {
			parts = append(parts, pts)
		}
	}
	if len(parts) == 0 {
		return theme.Muted.Render("Loading charts…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, joinWithGap(parts)...)
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}
