package domain

const (
	PieTitleAll  = "Total Successful Launches by Site"
	PieTitleSite = "Launch Outcomes for site: "
	FailureLabel = "Failure"
	SuccessLabel = "Success"
)

// PieFigure builds the outcome pie. For AllSites there is one slice per
// site holding its success count; otherwise two slices count the site's
// failures and successes. A site with no rows yields two zero slices.
func PieFigure(ds Dataset, site string) Figure {
	if site == AllSites {
		sums := map[string]float64{}
		for _, r := range ds.Rows {
			sums[r.Site] += float64(r.Class)
		}
		fig := Figure{Kind: KindPie, Title: PieTitleAll}
		for _, s := range ds.Sites {
			fig.Slices = append(fig.Slices, Slice{Label: s, Value: sums[s]})
		}
		fig.Empty = fig.Total() == 0
		return fig
	}

	var failure, success float64
	for _, r := range ds.Rows {
		if r.Site != site {
			continue
		}
		if r.Class == 1 {
			success++
		} else {
			failure++
		}
	}
	fig := Figure{
		Kind:  KindPie,
		Title: PieTitleSite + site,
		Slices: []Slice{
			{Label: FailureLabel, Value: failure},
			{Label: SuccessLabel, Value: success},
		},
	}
	fig.Empty = fig.Total() == 0
	return fig
}
