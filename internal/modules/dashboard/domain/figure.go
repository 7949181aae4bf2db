package domain

type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

type Slice struct {
	Label string
	Value float64
}

type Point struct {
	X     float64
	Y     float64
	Group string
	Hover string
}

type Tick struct {
	Value float64
	Label string
}

type Axis struct {
	Label string
	Ticks []Tick
}

// Figure is a renderer-independent chart description. Empty is set when
// there is nothing to draw.
type Figure struct {
	Kind   Kind
	Title  string
	Slices []Slice
	Points []Point
	Groups []string
	XAxis  Axis
	YAxis  Axis
	Empty  bool
}

// Total sums the slice values of a pie figure.
func (f Figure) Total() float64 {
	var total float64
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// GroupPoints returns the points of one scatter group in figure order.
func (f Figure) GroupPoints(group string) []Point {
	out := []Point{}
	for _, p := range f.Points {
		if p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func (f Format) Valid() bool {
	return f == FormatSVG || f == FormatPNG
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}
