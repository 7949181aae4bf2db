package domain

import (
	"fmt"
	"strconv"
)

const (
	ScatterTitle   = "Payload vs Outcome for "
	XAxisLabel     = "Payload Mass (kg)"
	YAxisLabel     = "Class"
	UnknownGroup   = "Unknown"
	defaultSiteCol = "Launch Site"
	defaultLoadCol = "Payload Mass (kg)"
)

// Filter keeps rows with low <= payload <= high, then restricts to site
// unless it is AllSites. Rows with an unknown payload never match.
func Filter(ds Dataset, site string, low, high float64) []Row {
	out := []Row{}
	for _, r := range ds.Rows {
		if !r.PayloadKnown() || r.PayloadKg < low || r.PayloadKg > high {
			continue
		}
		if site != AllSites && r.Site != site {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ScatterFigure plots payload against class for the filtered rows, grouped
// by booster category when the dataset has one and by site otherwise.
func ScatterFigure(ds Dataset, site string, low, high float64) Figure {
	title := ScatterTitle + site
	if site == AllSites {
		title = ScatterTitle + AllSitesLabel
	}
	fig := Figure{
		Kind:  KindScatter,
		Title: title,
		XAxis: Axis{Label: XAxisLabel},
		YAxis: Axis{
			Label: YAxisLabel,
			Ticks: []Tick{{Value: 0, Label: FailureLabel}, {Value: 1, Label: SuccessLabel}},
		},
	}

	siteCol := orDefault(ds.SiteColumn, defaultSiteCol)
	payloadCol := orDefault(ds.PayloadColumn, defaultLoadCol)
	seen := map[string]struct{}{}
	for _, r := range Filter(ds, site, low, high) {
		group := r.Site
		if ds.HasBooster {
			group = r.Booster
		}
		if group == "" {
			group = UnknownGroup
		}
		if _, ok := seen[group]; !ok {
			seen[group] = struct{}{}
			fig.Groups = append(fig.Groups, group)
		}
		fig.Points = append(fig.Points, Point{
			X:     r.PayloadKg,
			Y:     float64(r.Class),
			Group: group,
			Hover: fmt.Sprintf("%s=%s\n%s=%s", siteCol, r.Site, payloadCol, strconv.FormatFloat(r.PayloadKg, 'f', -1, 64)),
		})
	}
	fig.Empty = len(fig.Points) == 0
	return fig
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
