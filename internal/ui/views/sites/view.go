package sites

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "launchdash/internal/modules/dashboard/dto"
	"launchdash/internal/ui/theme"
)

// SelectedMsg is emitted when the highlighted site changes.
type SelectedMsg struct {
	Value string
}

type siteItem struct {
	option dashdto.OptionOutput
}

func (i siteItem) Title() string       { return i.option.Label }
func (i siteItem) Description() string { return i.option.Value }
func (i siteItem) FilterValue() string { return i.option.Label }

// Model is the searchable site dropdown.
type Model struct {
	list   list.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Launch Site"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{list: l}
}

// SetOptions replaces the dropdown options and highlights value.
func (m *Model) SetOptions(dropdown dashdto.DropdownOutput) tea.Cmd {
	items := make([]list.Item, len(dropdown.Options))
	selected := 0
	for i, o := range dropdown.Options {
		items[i] = siteItem{option: o}
		if o.Value == dropdown.Value {
			selected = i
		}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(selected)
	return cmd
}

// Select highlights the option whose value or label matches name. It
// reports false when nothing matches.
func (m *Model) Select(name string) bool {
	for i, item := range m.list.Items() {
		opt := item.(siteItem).option
		if opt.Value == name || opt.Label == name {
			m.list.ResetFilter()
			m.list.Select(i)
			return true
		}
	}
	return false
}

// Selected returns the highlighted site value.
func (m Model) Selected() string {
	if item, ok := m.list.SelectedItem().(siteItem); ok {
		return item.option.Value
	}
	return ""
}

// Filtering reports whether the search filter is capturing keys.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		m.list.SetSize(sz.Width, sz.Height)
		return m, nil
	}
	prev := m.Selected()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if cur := m.Selected(); cur != "" && cur != prev {
		return m, tea.Batch(cmd, func() tea.Msg { return SelectedMsg{Value: cur} })
	}
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View())
}
