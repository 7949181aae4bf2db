package service

import (
	"context"
	"fmt"
	"strings"

	"launchdash/internal/modules/launches/domain"
	launchesout "launchdash/internal/modules/launches/port/out"
	"launchdash/internal/platform/clock"
	apperrors "launchdash/internal/platform/errors"
	"launchdash/internal/platform/id"
)

type LaunchService struct {
	clock  clock.Clock
	idGen  id.Generator
	reader launchesout.TableReader
	writer launchesout.SnapshotWriter
}

func NewLaunchService(clock clock.Clock, idGen id.Generator, reader launchesout.TableReader, writer launchesout.SnapshotWriter) *LaunchService {
	return &LaunchService{clock: clock, idGen: idGen, reader: reader, writer: writer}
}

// Load reads and normalizes the dataset at location.
func (s *LaunchService) Load(ctx context.Context, location string) (domain.Table, error) {
	raw, err := s.reader.Read(ctx, location)
	if err != nil {
		return domain.Table{}, fmt.Errorf("load dataset: %w", err)
	}
	cols, err := domain.ResolveColumns(raw.Header)
	if err != nil {
		return domain.Table{}, err
	}
	return domain.Table{
		Location: location,
		LoadedAt: s.clock.Now(),
		Columns:  cols,
		Launches: domain.Normalize(raw, cols),
	}, nil
}

func (s *LaunchService) Snapshot(ctx context.Context, table domain.Table, dbPath string) (domain.Snapshot, error) {
	if strings.TrimSpace(dbPath) == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: snapshot path is required", apperrors.ErrInvalidInput)
	}
	snapshot := domain.Snapshot{
		ID:       s.idGen.New(),
		Location: table.Location,
		TakenAt:  s.clock.Now(),
		Columns:  table.Columns,
		Launches: table.Launches,
	}
	if err := s.writer.Write(ctx, dbPath, snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	return snapshot, nil
}
