package dto

// Figure kinds and image formats as they appear on the wire.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
	FormatSVG   = "svg"
	FormatPNG   = "png"
)

type OptionOutput struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DropdownOutput struct {
	ID          string         `json:"id"`
	Options     []OptionOutput `json:"options"`
	Value       string         `json:"value"`
	Placeholder string         `json:"placeholder"`
	Searchable  bool           `json:"searchable"`
}

type MarkOutput struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type SliderOutput struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Min   int          `json:"min"`
	Max   int          `json:"max"`
	Step  int          `json:"step"`
	Marks []MarkOutput `json:"marks"`
	Value [2]int       `json:"value"`
}

type LayoutOutput struct {
	Title     string         `json:"title"`
	Dropdown  DropdownOutput `json:"dropdown"`
	Slider    SliderOutput   `json:"slider"`
	PieID     string         `json:"pie_id"`
	ScatterID string         `json:"scatter_id"`
}

type SliceOutput struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type PointOutput struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group"`
	Hover string  `json:"hover"`
}

type TickOutput struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type AxisOutput struct {
	Label string       `json:"label,omitempty"`
	Ticks []TickOutput `json:"ticks,omitempty"`
}

type FigureOutput struct {
	Kind   string        `json:"kind"`
	Title  string        `json:"title"`
	Slices []SliceOutput `json:"slices,omitempty"`
	Points []PointOutput `json:"points,omitempty"`
	Groups []string      `json:"groups,omitempty"`
	XAxis  AxisOutput    `json:"x_axis"`
	YAxis  AxisOutput    `json:"y_axis"`
	Empty  bool          `json:"empty"`
}

type ScatterInput struct {
	Site string
	Low  float64
	High float64
}

type StateInput struct {
	Site    string     `json:"site"`
	Payload [2]float64 `json:"payload"`
}

type UpdateInput struct {
	Changed []string   `json:"changed"`
	State   StateInput `json:"state"`
}

type UpdateOutput struct {
	Outputs map[string]FigureOutput `json:"outputs"`
}

type RenderInput struct {
	Figure FigureOutput
	Format string
	Width  int
	Height int
}

type RenderOutput struct {
	ContentType string
	Data        []byte
}
