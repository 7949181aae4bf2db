package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	dashdto "launchdash/internal/modules/dashboard/dto"
	"launchdash/internal/ui/theme"
)

var (
	groupColors  = []lipgloss.Color{theme.Sapphire, theme.Peach, theme.Green, theme.Lavender, theme.Red, theme.Yellow}
	groupMarkers = []string{"●", "▲", "■", "◆", "✚", "★"}
)

func groupStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(groupColors[i%len(groupColors)])
}

// Pie draws a pie figure as one labelled horizontal bar per slice.
func Pie(fig dashdto.FigureOutput, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fig.Title) + "\n\n")
	if fig.Empty {
		sb.WriteString(theme.Muted.Render("No data"))
		return sb.String()
	}
	var total float64
	labelW := 0
	for _, s := range fig.Slices {
		total += s.Value
		labelW = max(labelW, lipgloss.Width(s.Label))
	}
	barW := max(10, width-labelW-20)
	for i, s := range fig.Slices {
		share := 0.0
		if total > 0 {
			share = s.Value / total
		}
		bar := strings.Repeat("█", int(math.Round(share*float64(barW))))
		fmt.Fprintf(&sb, "%-*s %s %5.1f%% (%g)\n", labelW, s.Label, groupStyle(i).Render(bar), share*100, s.Value)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Scatter draws a scatter figure on a two-row grid, one row per y tick.
func Scatter(fig dashdto.FigureOutput, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fig.Title) + "\n\n")
	if fig.Empty {
		sb.WriteString(theme.Muted.Render("No launches in range"))
		return sb.String()
	}

	groupIndex := make(map[string]int, len(fig.Groups))
	for i, g := range fig.Groups {
		groupIndex[g] = i
	}

	labelW := 0
	for _, t := range fig.YAxis.Ticks {
		labelW = max(labelW, lipgloss.Width(t.Label))
	}
	plotW := max(20, width-labelW-3)

	xMax := 0.0
	for _, p := range fig.Points {
		xMax = math.Max(xMax, p.X)
	}
	if xMax == 0 {
		xMax = 1
	}

	ticks := fig.YAxis.Ticks
	for i := len(ticks) - 1; i >= 0; i-- {
		row := make([]string, plotW)
		for c := range row {
			row[c] = " "
		}
		for _, p := range fig.Points {
			if p.Y != ticks[i].Value {
				continue
			}
			col := int(math.Round(p.X / xMax * float64(plotW-1)))
			col = max(0, min(plotW-1, col))
			gi := groupIndex[p.Group]
			row[col] = groupStyle(gi).Render(groupMarkers[gi%len(groupMarkers)])
		}
		fmt.Fprintf(&sb, "%*s │%s\n", labelW, ticks[i].Label, strings.Join(row, ""))
	}
	fmt.Fprintf(&sb, "%*s └%s\n", labelW, "", strings.Repeat("─", plotW))
	axis := fmt.Sprintf("0%*s", plotW-1, fmt.Sprintf("%g", xMax))
	fmt.Fprintf(&sb, "%*s  %s\n", labelW, "", axis)
	fmt.Fprintf(&sb, "%*s  %s\n\n", labelW, "", theme.Muted.Render(fig.XAxis.Label))

	legend := make([]string, 0, len(fig.Groups))
	for i, g := range fig.Groups {
		legend = append(legend, groupStyle(i).Render(groupMarkers[i%len(groupMarkers)])+" "+g)
	}
	sb.WriteString(strings.Join(legend, "   "))
	return sb.String()
}

// Points lists the hover text of every scatter point.
func Points(fig dashdto.FigureOutput) string {
	if len(fig.Points) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Points") + "\n")
	for _, p := range fig.Points {
		fmt.Fprintf(&sb, "%s  %s\n", theme.Muted.Render(p.Group), strings.ReplaceAll(p.Hover, "\n", "  "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
