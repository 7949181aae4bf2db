package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"launchdash/internal/modules/launches/domain"
	"launchdash/internal/modules/launches/dto"
	launchesin "launchdash/internal/modules/launches/port/in"
	"launchdash/internal/modules/launches/service"
	apperrors "launchdash/internal/platform/errors"
	"launchdash/internal/platform/logging"
)

// Interactor owns the single in-memory table. After Load it is only read.
type Interactor struct {
	svc    *service.LaunchService
	logger *zap.Logger

	mu     sync.RWMutex
	table  domain.Table
	loaded bool
}

func NewInteractor(svc *service.LaunchService, logger *zap.Logger) launchesin.Usecase {
	return &Interactor{svc: svc, logger: logging.OrNop(logger).Named("launches")}
}

func (i *Interactor) Load(ctx context.Context, input dto.LoadInput) (dto.DatasetOutput, error) {
	started := time.Now()
	i.logger.Info("fetching dataset", zap.String("location", input.Location))
	table, err := i.svc.Load(ctx, input.Location)
	if err != nil {
		i.logger.Error("dataset load failed", zap.String("location", input.Location), zap.Error(err))
		return dto.DatasetOutput{}, err
	}
	i.mu.Lock()
	i.table = table
	i.loaded = true
	i.mu.Unlock()
	i.logger.Info("dataset loaded",
		zap.String("location", input.Location),
		zap.Int("rows", len(table.Launches)),
		zap.String("site_column", table.Columns.Site.Name),
		zap.String("class_column", table.Columns.Class.Name),
		zap.String("payload_column", table.Columns.Payload.Name),
		zap.String("booster_column", table.Columns.Booster.Name),
		zap.Duration("took", time.Since(started)),
	)
	return toDatasetOutput(table), nil
}

func (i *Interactor) Current(context.Context) (dto.DatasetOutput, error) {
	table, err := i.current()
	if err != nil {
		return dto.DatasetOutput{}, err
	}
	return toDatasetOutput(table), nil
}

func (i *Interactor) Summary(context.Context) ([]dto.SiteSummaryOutput, error) {
	table, err := i.current()
	if err != nil {
		return nil, err
	}
	summaries := domain.Summarize(table.Launches)
	out := make([]dto.SiteSummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.SiteSummaryOutput{
			Site:        s.Site,
			Launches:    s.Launches,
			Successes:   s.Successes,
			Failures:    s.Failures,
			SuccessRate: s.SuccessRate(),
			PayloadMin:  s.PayloadMin,
			PayloadMax:  s.PayloadMax,
		})
	}
	return out, nil
}

func (i *Interactor) Snapshot(ctx context.Context, input dto.SnapshotInput) (dto.SnapshotOutput, error) {
	table, err := i.current()
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	snapshot, err := i.svc.Snapshot(ctx, table, input.DBPath)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	i.logger.Info("snapshot written",
		zap.String("id", snapshot.ID),
		zap.String("path", input.DBPath),
		zap.Int("rows", len(snapshot.Launches)),
	)
	return dto.SnapshotOutput{ID: snapshot.ID, Path: input.DBPath, Rows: len(snapshot.Launches), TakenAt: snapshot.TakenAt}, nil
}

func (i *Interactor) current() (domain.Table, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.loaded {
		return domain.Table{}, apperrors.ErrNotLoaded
	}
	return i.table, nil
}

func toDatasetOutput(table domain.Table) dto.DatasetOutput {
	out := dto.DatasetOutput{
		Location: table.Location,
		LoadedAt: table.LoadedAt,
		Columns: dto.ColumnsOutput{
			Site:    table.Columns.Site.Name,
			Class:   table.Columns.Class.Name,
			Payload: table.Columns.Payload.Name,
			Booster: table.Columns.Booster.Name,
		},
		HasBooster: table.HasBooster(),
		Sites:      table.Sites(),
		Records:    make([]dto.RecordOutput, 0, len(table.Launches)),
	}
	out.PayloadMin, out.PayloadMax, out.PayloadKnown = table.PayloadBounds()
	for _, l := range table.Launches {
		out.Records = append(out.Records, dto.RecordOutput{
			Site:      l.Site,
			Class:     l.Class,
			PayloadKg: l.PayloadKg,
			Booster:   l.Booster,
		})
	}
	return out
}
