package domain

import (
	"math"
	"strconv"
)

const (
	AllSites      = "ALL"
	AllSitesLabel = "All Sites"

	SiteDropdownID   = "site-dropdown"
	PayloadSliderID  = "payload-slider"
	PieChartID       = "success-pie-chart"
	ScatterChartID   = "success-payload-scatter-chart"
	PageTitle        = "SpaceX Launch Records Dashboard"
	SitePlaceholder  = "Select a Launch Site here"
	PayloadLabel     = "Payload range (kg)"
	SliderMin        = 0
	SliderMax        = 10000
	SliderStep       = 1000
	SliderMarkStride = 2000
)

type Option struct {
	Label string
	Value string
}

type Dropdown struct {
	ID          string
	Options     []Option
	Value       string
	Placeholder string
	Searchable  bool
}

// Contains reports whether value is one of the dropdown options.
func (d Dropdown) Contains(value string) bool {
	for _, o := range d.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

type Mark struct {
	Value int
	Label string
}

type RangeSlider struct {
	ID    string
	Label string
	Min   int
	Max   int
	Step  int
	Marks []Mark
	Value [2]int
}

// Clamp moves v onto the slider track.
func (s RangeSlider) Clamp(v int) int {
	return max(s.Min, min(s.Max, v))
}

type Layout struct {
	Title     string
	Dropdown  Dropdown
	Slider    RangeSlider
	PieID     string
	ScatterID string
}

// DefaultState is the widget state a fresh page starts from.
func (l Layout) DefaultState() State {
	return State{Site: l.Dropdown.Value, Low: float64(l.Slider.Value[0]), High: float64(l.Slider.Value[1])}
}

// BuildLayout describes the page for the given dataset. The slider starts at
// the truncated payload bounds, or spans the whole track when no payload is
// known.
func BuildLayout(ds Dataset) Layout {
	options := make([]Option, 0, len(ds.Sites)+1)
	options = append(options, Option{Label: AllSitesLabel, Value: AllSites})
	for _, site := range ds.Sites {
		options = append(options, Option{Label: site, Value: site})
	}

	marks := make([]Mark, 0, SliderMax/SliderMarkStride+1)
	for v := SliderMin; v <= SliderMax; v += SliderMarkStride {
		marks = append(marks, Mark{Value: v, Label: strconv.Itoa(v)})
	}

	value := [2]int{SliderMin, SliderMax}
	if ds.PayloadKnown {
		value = [2]int{int(math.Trunc(ds.PayloadMin)), int(math.Trunc(ds.PayloadMax))}
	}

	return Layout{
		Title: PageTitle,
		Dropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     options,
			Value:       AllSites,
			Placeholder: SitePlaceholder,
			Searchable:  true,
		},
		Slider: RangeSlider{
			ID:    PayloadSliderID,
			Label: PayloadLabel,
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Marks: marks,
			Value: value,
		},
		PieID:     PieChartID,
		ScatterID: ScatterChartID,
	}
}
