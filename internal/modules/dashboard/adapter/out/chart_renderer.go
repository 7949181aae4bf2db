package out

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"launchdash/internal/modules/dashboard/domain"
	dashboardout "launchdash/internal/modules/dashboard/port/out"
)

// palette follows the qualitative colours the dashboard has always used.
var palette = []string{"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a", "19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52"}

var noDataColor = drawing.ColorFromHex("d3d3d3")

// GoChartRenderer draws figures with go-chart.
type GoChartRenderer struct{}

func NewGoChartRenderer() dashboardout.ChartRenderer {
	return GoChartRenderer{}
}

func (GoChartRenderer) Render(ctx context.Context, figure domain.Figure, format domain.Format, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	provider := chart.SVG
	text := html.EscapeString
	if format == domain.FormatPNG {
		provider = chart.PNG
		text = func(s string) string { return s }
	}

	var buf bytes.Buffer
	switch figure.Kind {
	case domain.KindPie:
		if err := pieChart(figure, width, height, text).Render(provider, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case domain.KindScatter:
		sc, targets := scatterChart(figure, width, height, text)
		if err := sc.Render(provider, &buf); err != nil {
			return nil, err
		}
		if format == domain.FormatPNG {
			return buf.Bytes(), nil
		}
		return withHoverTitles(buf.Bytes(), *targets), nil
	default:
		return nil, fmt.Errorf("unknown figure kind %q", figure.Kind)
	}
}

func colorAt(i int) drawing.Color {
	return drawing.ColorFromHex(palette[i%len(palette)])
}

// pieChart builds the go-chart pie. text prepares every string for the
// output format; go-chart writes SVG text nodes without escaping.
func pieChart(figure domain.Figure, width, height int, text func(string) string) chart.PieChart {
	pie := chart.PieChart{
		Title:  text(figure.Title),
		Width:  width,
		Height: height,
	}
	if figure.Empty {
		pie.Values = []chart.Value{{
			Value: 1,
			Label: "No data",
			Style: chart.Style{FillColor: noDataColor, StrokeColor: drawing.ColorWhite},
		}}
		return pie
	}
	for i, s := range figure.Slices {
		if s.Value <= 0 {
			continue
		}
		pie.Values = append(pie.Values, chart.Value{
			Value: s.Value,
			Label: text(fmt.Sprintf("%s (%s)", s.Label, percent(s.Value, figure.Total()))),
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: drawing.ColorWhite},
		})
	}
	return pie
}

func percent(v, total float64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", v/total*100)
}

func scatterChart(figure domain.Figure, width, height int, text func(string) string) (chart.Chart, *[]hoverTarget) {
	// Blank outer ticks pin the y range so 0 and 1 sit inside the plot.
	ticks := []chart.Tick{{Value: -0.25}}
	for _, t := range figure.YAxis.Ticks {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: text(t.Label)})
	}
	ticks = append(ticks, chart.Tick{Value: 1.25})
	xMax := float64(domain.SliderMax)
	xMin := 0.0
	for _, p := range figure.Points {
		xMax = math.Max(xMax, p.X)
		xMin = math.Min(xMin, p.X)
	}

	ch := chart.Chart{
		Title:      text(figure.Title),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  text(figure.XAxis.Label),
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  text(figure.YAxis.Label),
			Ticks: ticks,
		},
	}

	for i, group := range figure.Groups {
		points := figure.GroupPoints(group)
		xs := make([]float64, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, p := range points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    text(group),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    colorAt(i),
			},
		})
	}

	targets := &[]hoverTarget{}
	if len(ch.Series) == 0 {
		// go-chart refuses to draw without a visible series, so an invisible
		// one keeps the axes on screen.
		ch.Series = []chart.Series{chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: drawing.ColorTransparent,
			},
			XValues: []float64{xMin, xMax},
			YValues: []float64{0, 1},
		}}
		return ch, targets
	}
	legendOf := ch
	ch.Elements = []chart.Renderable{chart.Legend(&legendOf)}
	ch.Series = append(ch.Series, hoverSeries{points: figure.Points, targets: targets})
	return ch, targets
}

type hoverTarget struct {
	x, y int
	text string
}

// hoverSeries draws nothing. It records where each point lands on the
// canvas so the SVG can carry one tooltip per point.
type hoverSeries struct {
	points  []domain.Point
	targets *[]hoverTarget
}

func (hoverSeries) GetName() string           { return "" }
func (hoverSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (hoverSeries) GetStyle() chart.Style     { return chart.Style{} }
func (hoverSeries) Validate() error           { return nil }

func (s hoverSeries) Render(_ chart.Renderer, box chart.Box, xr, yr chart.Range, _ chart.Style) {
	for _, p := range s.points {
		*s.targets = append(*s.targets, hoverTarget{
			x:    box.Left + xr.Translate(p.X),
			y:    box.Bottom - yr.Translate(p.Y),
			text: p.Hover,
		})
	}
}

// withHoverTitles appends a transparent circle with a <title> over every
// point, just before the closing svg tag.
func withHoverTitles(svg []byte, targets []hoverTarget) []byte {
	end := bytes.LastIndex(svg, []byte("</svg>"))
	if end < 0 || len(targets) == 0 {
		return svg
	}
	var g bytes.Buffer
	g.WriteString(`<g class="hover">`)
	for _, t := range targets {
		fmt.Fprintf(&g, `<circle cx="%d" cy="%d" r="7" style="fill:transparent;stroke:none"><title>%s</title></circle>`,
			t.x, t.y, html.EscapeString(t.text))
	}
	g.WriteString(`</g>`)
	out := make([]byte, 0, len(svg)+g.Len())
	out = append(out, svg[:end]...)
	out = append(out, g.Bytes()...)
	return append(out, svg[end:]...)
}
