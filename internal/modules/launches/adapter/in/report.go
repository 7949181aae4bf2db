package in

import (
	"context"
	"fmt"
	"math"
	"strings"

	"launchdash/internal/modules/launches/dto"
	"launchdash/internal/platform/format"
)

const ReportTitle = "Launch Summary"

// Report renders the loaded dataset and its per-site summary as Markdown.
func (h CLIHandler) Report(ctx context.Context) (dto.ReportOutput, error) {
	ds, err := h.usecase.Current(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	rows, err := h.usecase.Summary(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return dto.ReportOutput{
		Location: ds.Location,
		LoadedAt: ds.LoadedAt,
		Rows:     len(ds.Records),
		Markdown: reportMarkdown(ds, rows),
	}, nil
}

func reportMarkdown(ds dto.DatasetOutput, rows []dto.SiteSummaryOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ReportTitle)
	fmt.Fprintf(&b, "%d launches across %d sites, loaded from `%s`.\n\n", len(ds.Records), len(ds.Sites), ds.Location)
	if ds.PayloadKnown {
		fmt.Fprintf(&b, "Payload mass ranges from %g kg to %g kg.\n\n", ds.PayloadMin, ds.PayloadMax)
	} else {
		b.WriteString("No payload mass is known.\n\n")
	}

	b.WriteString("## Sites\n\n")
	t := format.NewTable(format.Markdown, "Site", "Launches", "Successes", "Failures", "Success rate", "Payload kg")
	t.AlignRight(2, 3, 4, 5)
	var launches, successes, failures int
	for _, r := range rows {
		t.Row(r.Site, r.Launches, r.Successes, r.Failures, fmt.Sprintf("%.1f%%", r.SuccessRate*100), payloadSpan(r.PayloadMin, r.PayloadMax))
		launches += r.Launches
		successes += r.Successes
		failures += r.Failures
	}
	t.Footer("Total", launches, successes, failures, rate(successes, launches), "")
	b.WriteString(t.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## Columns\n\n")
	fmt.Fprintf(&b, "- site: `%s`\n- class: `%s`\n- payload: `%s`\n", ds.Columns.Site, ds.Columns.Class, ds.Columns.Payload)
	if ds.HasBooster {
		fmt.Fprintf(&b, "- booster: `%s`\n", ds.Columns.Booster)
	}
	return b.String()
}

func payloadSpan(lo, hi float64) string {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return "-"
	}
	return fmt.Sprintf("%g..%g", lo, hi)
}

func rate(successes, launches int) string {
	if launches == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(successes)/float64(launches)*100)
}
