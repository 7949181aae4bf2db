package out

import (
	"context"

	"launchdash/internal/modules/dashboard/domain"
	dashboardout "launchdash/internal/modules/dashboard/port/out"
	launchesin "launchdash/internal/modules/launches/port/in"
)

// LaunchesDatasetAdapter exposes the loaded launch table to the dashboard.
type LaunchesDatasetAdapter struct {
	launches launchesin.Usecase
}

func NewLaunchesDatasetAdapter(launches launchesin.Usecase) dashboardout.DatasetSource {
	return &LaunchesDatasetAdapter{launches: launches}
}

func (a *LaunchesDatasetAdapter) Dataset(ctx context.Context) (domain.Dataset, error) {
	table, err := a.launches.Current(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	rows := make([]domain.Row, 0, len(table.Records))
	for _, r := range table.Records {
		rows = append(rows, domain.Row{Site: r.Site, Class: r.Class, PayloadKg: r.PayloadKg, Booster: r.Booster})
	}
	return domain.Dataset{
		SiteColumn:    table.Columns.Site,
		PayloadColumn: table.Columns.Payload,
		HasBooster:    table.HasBooster,
		Sites:         table.Sites,
		PayloadKnown:  table.PayloadKnown,
		PayloadMin:    table.PayloadMin,
		PayloadMax:    table.PayloadMax,
		Rows:          rows,
	}, nil
}
