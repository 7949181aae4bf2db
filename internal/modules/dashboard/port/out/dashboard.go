package out

import (
	"context"

	"launchdash/internal/modules/dashboard/domain"
)

type DatasetSource interface {
	Dataset(ctx context.Context) (domain.Dataset, error)
}

type ChartRenderer interface {
	Render(ctx context.Context, figure domain.Figure, format domain.Format, width, height int) ([]byte, error)
}
