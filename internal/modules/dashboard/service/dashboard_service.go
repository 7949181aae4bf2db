package service

import (
	"context"
	"fmt"

	"launchdash/internal/modules/dashboard/domain"
	dashboardout "launchdash/internal/modules/dashboard/port/out"
	apperrors "launchdash/internal/platform/errors"
)

type DashboardService struct {
	source   dashboardout.DatasetSource
	renderer dashboardout.ChartRenderer
	registry *domain.Registry
	width    int
	height   int
}

func NewDashboardService(source dashboardout.DatasetSource, renderer dashboardout.ChartRenderer, registry *domain.Registry, width, height int) *DashboardService {
	if registry == nil {
		registry = domain.DefaultRegistry()
	}
	return &DashboardService{source: source, renderer: renderer, registry: registry, width: width, height: height}
}

func (s *DashboardService) Layout(ctx context.Context) (domain.Layout, error) {
	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return domain.Layout{}, err
	}
	return domain.BuildLayout(ds), nil
}

func (s *DashboardService) Pie(ctx context.Context, site string) (domain.Figure, error) {
	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return domain.Figure{}, err
	}
	return domain.PieFigure(ds, site), nil
}

func (s *DashboardService) Scatter(ctx context.Context, site string, low, high float64) (domain.Figure, error) {
	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return domain.Figure{}, err
	}
	return domain.ScatterFigure(ds, site, low, high), nil
}

// Update re-runs the callbacks bound to the changed inputs.
func (s *DashboardService) Update(ctx context.Context, changed []string, st domain.State) (map[string]domain.Figure, error) {
	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.registry.Dispatch(ds, st, changed)
}

func (s *DashboardService) Render(ctx context.Context, figure domain.Figure, format domain.Format, width, height int) ([]byte, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported chart format %q", apperrors.ErrInvalidInput, format)
	}
	if width <= 0 {
		width = s.width
	}
	if height <= 0 {
		height = s.height
	}
	data, err := s.renderer.Render(ctx, figure, format, width, height)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", figure.Kind, err)
	}
	return data, nil
}
