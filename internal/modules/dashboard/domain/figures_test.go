package domain_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/modules/dashboard/domain"
)

func abDataset() domain.Dataset {
	return domain.Dataset{
		Sites: []string{"A", "B"},
		Rows: []domain.Row{
			{Site: "A", Class: 1, PayloadKg: 500},
			{Site: "A", Class: 0, PayloadKg: 3000},
			{Site: "B", Class: 1, PayloadKg: 9000},
		},
		PayloadKnown: true,
		PayloadMin:   500,
		PayloadMax:   9000,
	}
}

func fleetDataset() domain.Dataset {
	return domain.Dataset{
		SiteColumn:    "Launch Site",
		PayloadColumn: "Payload Mass (kg)",
		HasBooster:    true,
		Sites:         []string{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E"},
		Rows: []domain.Row{
			{Site: "CCAFS LC-40", Class: 0, PayloadKg: 0, Booster: "v1.0"},
			{Site: "CCAFS LC-40", Class: 1, PayloadKg: 525, Booster: "v1.0"},
			{Site: "KSC LC-39A", Class: 1, PayloadKg: 2490, Booster: "FT"},
			{Site: "VAFB SLC-4E", Class: 0, PayloadKg: 9600, Booster: "v1.1"},
			{Site: "KSC LC-39A", Class: 1, PayloadKg: 5300, Booster: "FT"},
			{Site: "CCAFS LC-40", Class: 1, PayloadKg: math.NaN(), Booster: ""},
			{Site: "VAFB SLC-4E", Class: 1, PayloadKg: 475, Booster: ""},
		},
		PayloadKnown: true,
		PayloadMin:   0,
		PayloadMax:   9600,
	}
}

func TestPieAllSitesSumsClassPerSite(t *testing.T) {
	t.Parallel()
	fig := domain.PieFigure(abDataset(), domain.AllSites)
	want := []domain.Slice{{Label: "A", Value: 1}, {Label: "B", Value: 1}}
	if diff := cmp.Diff(want, fig.Slices); diff != "" {
		t.Fatalf("slices (-want +got):\n%s", diff)
	}
	if fig.Title != "Total Successful Launches by Site" {
		t.Fatalf("unexpected title %q", fig.Title)
	}

	fleet := fleetDataset()
	fig = domain.PieFigure(fleet, domain.AllSites)
	if len(fig.Slices) != len(fleet.Sites) {
		t.Fatalf("expected one slice per site, got %d", len(fig.Slices))
	}
	for _, s := range fig.Slices {
		var sum float64
		for _, r := range fleet.Rows {
			if r.Site == s.Label {
				sum += float64(r.Class)
			}
		}
		if s.Value != sum {
			t.Fatalf("slice %s = %v, want %v", s.Label, s.Value, sum)
		}
	}
}

func TestPieSingleSiteCountsOutcomes(t *testing.T) {
	t.Parallel()
	fig := domain.PieFigure(abDataset(), "A")
	want := []domain.Slice{{Label: "Failure", Value: 1}, {Label: "Success", Value: 1}}
	if diff := cmp.Diff(want, fig.Slices); diff != "" {
		t.Fatalf("slices (-want +got):\n%s", diff)
	}
	if fig.Title != "Launch Outcomes for site: A" {
		t.Fatalf("unexpected title %q", fig.Title)
	}

	fleet := fleetDataset()
	for _, site := range fleet.Sites {
		rows := 0
		for _, r := range fleet.Rows {
			if r.Site == site {
				rows++
			}
		}
		if got := domain.PieFigure(fleet, site).Total(); got != float64(rows) {
			t.Fatalf("site %s slices sum to %v, want %d", site, got, rows)
		}
	}
}

func TestPieUnknownSiteIsEmpty(t *testing.T) {
	t.Parallel()
	fig := domain.PieFigure(abDataset(), "Mars")
	if !fig.Empty || len(fig.Slices) != 2 || fig.Total() != 0 {
		t.Fatalf("unknown site should yield two zero slices: %+v", fig)
	}
}

func TestScatterFullRangeKeepsEveryKnownPayload(t *testing.T) {
	t.Parallel()
	ds := fleetDataset()
	full := domain.ScatterFigure(ds, domain.AllSites, ds.PayloadMin, ds.PayloadMax)
	wide := domain.ScatterFigure(ds, domain.AllSites, -1e9, 1e9)
	if diff := cmp.Diff(full.Points, wide.Points); diff != "" {
		t.Fatalf("range containing bounds changed the points (-full +wide):\n%s", diff)
	}
	if len(full.Points) != 6 {
		t.Fatalf("expected 6 known-payload points, got %d", len(full.Points))
	}
	if full.Title != "Payload vs Outcome for All Sites" {
		t.Fatalf("unexpected title %q", full.Title)
	}
}

func TestScatterWideningNeverRemovesRows(t *testing.T) {
	t.Parallel()
	ds := fleetDataset()
	ranges := [][2]float64{{2000, 3000}, {1000, 6000}, {0, 6000}, {0, 10000}}
	prev := 0
	for _, rg := range ranges {
		n := len(domain.ScatterFigure(ds, domain.AllSites, rg[0], rg[1]).Points)
		if n < prev {
			t.Fatalf("range %v returned %d points, fewer than %d", rg, n, prev)
		}
		prev = n
	}
}

func TestScatterInclusiveBoundsAndSiteFilter(t *testing.T) {
	t.Parallel()
	fig := domain.ScatterFigure(fleetDataset(), "KSC LC-39A", 2490, 5300)
	if len(fig.Points) != 2 {
		t.Fatalf("bounds should be inclusive, got %d points", len(fig.Points))
	}
	if fig.Title != "Payload vs Outcome for KSC LC-39A" {
		t.Fatalf("unexpected title %q", fig.Title)
	}
	if got := domain.ScatterFigure(fleetDataset(), domain.AllSites, 5000, 1000); !got.Empty {
		t.Fatalf("low > high should yield no points: %+v", got.Points)
	}
}

func TestScatterGroupsAxesAndHover(t *testing.T) {
	t.Parallel()
	fig := domain.ScatterFigure(fleetDataset(), domain.AllSites, 0, 10000)
	if diff := cmp.Diff([]string{"v1.0", "FT", "v1.1", "Unknown"}, fig.Groups); diff != "" {
		t.Fatalf("groups should follow first appearance (-want +got):\n%s", diff)
	}
	if fig.XAxis.Label != "Payload Mass (kg)" || fig.YAxis.Label != "Class" {
		t.Fatalf("unexpected axis labels %q / %q", fig.XAxis.Label, fig.YAxis.Label)
	}
	wantTicks := []domain.Tick{{Value: 0, Label: "Failure"}, {Value: 1, Label: "Success"}}
	if diff := cmp.Diff(wantTicks, fig.YAxis.Ticks); diff != "" {
		t.Fatalf("y ticks (-want +got):\n%s", diff)
	}
	if fig.Points[2].Hover != "Launch Site=KSC LC-39A\nPayload Mass (kg)=2490" {
		t.Fatalf("unexpected hover %q", fig.Points[2].Hover)
	}

	noBooster := fleetDataset()
	noBooster.HasBooster = false
	bySite := domain.ScatterFigure(noBooster, domain.AllSites, 0, 10000)
	if diff := cmp.Diff([]string{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E"}, bySite.Groups); diff != "" {
		t.Fatalf("groups without booster should be sites (-want +got):\n%s", diff)
	}
}
