package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"launchdash/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

const siteCommand = "site "

// paletteCommands mirrors the commands handled by app.Model.executePalette.
var paletteCommands = []struct{ name, usage string }{
	{"site", "site <name>"},
	{"range", "range <low> <high>"},
	{"reset", "reset"},
	{"summary", "summary"},
	{"dashboard", "dashboard"},
}

// Palette is the dashboard command line. Tab completes command names and,
// after "site ", the launch site values offered by the dropdown.
type Palette struct {
	input   textinput.Model
	sites   []string
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "site KSC LC-39A, range 2000 8000, reset…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// SetSites replaces the site values offered after "site ".
func (p *Palette) SetSites(sites []string) {
	p.sites = append(p.sites[:0:0], sites...)
}

func (p Palette) Visible() bool { return p.visible }

// Value returns the current input line.
func (p Palette) Value() string { return p.input.Value() }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if completed, ok := p.complete(p.input.Value()); ok {
				p.input.SetValue(completed)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Candidates lists what tab would complete the input to: site values when
// the input starts with "site ", command usages otherwise.
func (p Palette) Candidates() []string {
	input := p.input.Value()
	if rest, ok := cutFold(input, siteCommand); ok {
		return p.matchingSites(rest)
	}
	prefix := strings.ToLower(strings.TrimSpace(input))
	var out []string
	for _, c := range paletteCommands {
		if strings.HasPrefix(c.name, prefix) || strings.HasPrefix(prefix, c.name+" ") {
			out = append(out, c.usage)
		}
	}
	return out
}

// complete extends input to the longest prefix shared by its matches. A
// single match is completed in full.
func (p Palette) complete(input string) (string, bool) {
	if rest, ok := cutFold(input, siteCommand); ok {
		sites := p.matchingSites(rest)
		if len(sites) == 0 {
			return input, false
		}
		return siteCommand + commonPrefix(sites), true
	}
	prefix := strings.ToLower(strings.TrimSpace(input))
	var names []string
	for _, c := range paletteCommands {
		if strings.HasPrefix(c.name, prefix) {
			names = append(names, c.name)
		}
	}
	switch len(names) {
	case 0:
		return input, false
	case 1:
		if names[0] == "site" || names[0] == "range" {
			return names[0] + " ", true
		}
		return names[0], true
	default:
		return commonPrefix(names), true
	}
}

func (p Palette) matchingSites(prefix string) []string {
	prefix = strings.ToLower(strings.TrimLeft(prefix, " "))
	var out []string
	for _, s := range p.sites {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func cutFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// commonPrefix keeps the casing of the first value. Values are compared
// case-insensitively so "ksc" still narrows to "KSC LC-39A".
func commonPrefix(values []string) string {
	first := []rune(values[0])
	n := len(first)
	for _, v := range values[1:] {
		other := []rune(v)
		i := 0
		for i < n && i < len(other) && strings.EqualFold(string(first[i]), string(other[i])) {
			i++
		}
		n = i
	}
	return string(first[:n])
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if hints := p.Candidates(); len(hints) > 0 {
		sb.WriteString("\n")
		for _, h := range hints {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
		sb.WriteString(hintStyle.Render("  tab to complete") + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
