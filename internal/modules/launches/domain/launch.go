package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Launch struct {
	Site      string
	Class     int
	PayloadKg float64 // NaN when the source value was not numeric
	Booster   string
}

func (l Launch) PayloadKnown() bool { return !math.IsNaN(l.PayloadKg) }

// RawTable is an undecoded CSV: a header row plus data rows.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Table is the normalized, read-only launch dataset.
type Table struct {
	Location string
	LoadedAt time.Time
	Columns  ColumnMap
	Launches []Launch
}

func (t Table) HasBooster() bool { return t.Columns.Booster.Found() }

// Sites returns distinct site names, sorted.
func (t Table) Sites() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, l := range t.Launches {
		if _, ok := seen[l.Site]; ok {
			continue
		}
		seen[l.Site] = struct{}{}
		out = append(out, l.Site)
	}
	sort.Strings(out)
	return out
}

// PayloadBounds returns the smallest and largest known payload. ok is false
// when no row carries a numeric payload.
func (t Table) PayloadBounds() (lo, hi float64, ok bool) {
	for _, l := range t.Launches {
		if !l.PayloadKnown() {
			continue
		}
		if !ok {
			lo, hi, ok = l.PayloadKg, l.PayloadKg, true
			continue
		}
		lo = math.Min(lo, l.PayloadKg)
		hi = math.Max(hi, l.PayloadKg)
	}
	return lo, hi, ok
}

// Normalize converts raw rows into launches using the resolved columns.
// Short rows yield empty cells rather than errors.
func Normalize(raw RawTable, cols ColumnMap) []Launch {
	out := make([]Launch, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		out = append(out, Launch{
			Site:      strings.TrimSpace(cell(row, cols.Site)),
			Class:     NormalizeClass(cell(row, cols.Class)),
			PayloadKg: ParsePayload(cell(row, cols.Payload)),
			Booster:   strings.TrimSpace(cell(row, cols.Booster)),
		})
	}
	return out
}

// NormalizeClass coerces an outcome cell to 0 or 1. The value is parsed as a
// number and truncated; 1 and above is success, anything else (including
// unparseable text) is failure.
func NormalizeClass(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	if math.Trunc(v) >= 1 {
		return 1
	}
	return 0
}

// ParsePayload parses a payload cell in kilograms, NaN when not numeric.
func ParsePayload(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func cell(row []string, c Column) string {
	if !c.Found() || c.Index >= len(row) {
		return ""
	}
	return row[c.Index]
}
