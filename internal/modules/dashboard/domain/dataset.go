package domain

import "math"

// Row is one launch as the dashboard sees it.
type Row struct {
	Site      string
	Class     int
	PayloadKg float64 // NaN when unknown
	Booster   string
}

func (r Row) PayloadKnown() bool { return !math.IsNaN(r.PayloadKg) }

// Dataset is the immutable table every figure is computed from.
type Dataset struct {
	SiteColumn    string
	PayloadColumn string
	HasBooster    bool
	Sites         []string
	PayloadKnown  bool
	PayloadMin    float64
	PayloadMax    float64
	Rows          []Row
}

// State is the current widget selection.
type State struct {
	Site string
	Low  float64
	High float64
}
