package in

import (
	"context"

	"launchdash/internal/modules/dashboard/dto"
	dashboardin "launchdash/internal/modules/dashboard/port/in"
)

// TUIHandler drives the terminal dashboard through the same reactive
// bindings as the web page.
type TUIHandler struct {
	usecase dashboardin.Usecase
}

func NewTUIHandler(usecase dashboardin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Layout(ctx context.Context) (dto.LayoutOutput, error) {
	return h.usecase.Layout(ctx)
}

func (h TUIHandler) Update(ctx context.Context, changed []string, site string, low, high float64) (dto.UpdateOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{
		Changed: changed,
		State:   dto.StateInput{Site: site, Payload: [2]float64{low, high}},
	})
}
