package domain

import (
	"math"
	"sort"
)

// SiteSummary aggregates one launch site.
type SiteSummary struct {
	Site       string
	Launches   int
	Successes  int
	Failures   int
	PayloadMin float64 // NaN when the site has no known payload
	PayloadMax float64
}

func (s SiteSummary) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// Summarize groups launches per site, sorted by site name.
func Summarize(launches []Launch) []SiteSummary {
	bySite := map[string]*SiteSummary{}
	for _, l := range launches {
		s, ok := bySite[l.Site]
		if !ok {
			s = &SiteSummary{Site: l.Site, PayloadMin: math.NaN(), PayloadMax: math.NaN()}
			bySite[l.Site] = s
		}
		s.Launches++
		if l.Class == 1 {
			s.Successes++
		} else {
			s.Failures++
		}
		if l.PayloadKnown() {
			if math.IsNaN(s.PayloadMin) || l.PayloadKg < s.PayloadMin {
				s.PayloadMin = l.PayloadKg
			}
			if math.IsNaN(s.PayloadMax) || l.PayloadKg > s.PayloadMax {
				s.PayloadMax = l.PayloadKg
			}
		}
	}
	out := make([]SiteSummary, 0, len(bySite))
	for _, s := range bySite {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Site < out[j].Site })
	return out
}
