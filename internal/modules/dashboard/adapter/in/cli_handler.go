package in

import (
	"context"

	"launchdash/internal/modules/dashboard/dto"
	dashboardin "launchdash/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Layout(ctx context.Context) (dto.LayoutOutput, error) {
	return h.usecase.Layout(ctx)
}

func (h CLIHandler) Pie(ctx context.Context, site string) (dto.FigureOutput, error) {
	return h.usecase.Pie(ctx, site)
}

func (h CLIHandler) Scatter(ctx context.Context, site string, low, high float64) (dto.FigureOutput, error) {
	return h.usecase.Scatter(ctx, dto.ScatterInput{Site: site, Low: low, High: high})
}

func (h CLIHandler) Render(ctx context.Context, figure dto.FigureOutput, format string, width, height int) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx, dto.RenderInput{Figure: figure, Format: format, Width: width, Height: height})
}
