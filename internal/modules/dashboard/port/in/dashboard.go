package in

import (
	"context"

	"launchdash/internal/modules/dashboard/dto"
)

type Usecase interface {
	Layout(ctx context.Context) (dto.LayoutOutput, error)
	Pie(ctx context.Context, site string) (dto.FigureOutput, error)
	Scatter(ctx context.Context, input dto.ScatterInput) (dto.FigureOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error)
	Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error)
}
