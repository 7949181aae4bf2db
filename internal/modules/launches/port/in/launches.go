package in

import (
	"context"

	"launchdash/internal/modules/launches/dto"
)

type Usecase interface {
	Load(ctx context.Context, input dto.LoadInput) (dto.DatasetOutput, error)
	Current(ctx context.Context) (dto.DatasetOutput, error)
	Summary(ctx context.Context) ([]dto.SiteSummaryOutput, error)
	Snapshot(ctx context.Context, input dto.SnapshotInput) (dto.SnapshotOutput, error)
}
