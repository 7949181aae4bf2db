package in

import (
	"context"

	"launchdash/internal/modules/launches/dto"
	launchesin "launchdash/internal/modules/launches/port/in"
)

type CLIHandler struct {
	usecase launchesin.Usecase
}

func NewCLIHandler(usecase launchesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dataset(ctx context.Context) (dto.DatasetOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) ([]dto.SiteSummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context, dbPath string) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, dto.SnapshotInput{DBPath: dbPath})
}
