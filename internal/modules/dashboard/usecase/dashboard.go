package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"launchdash/internal/modules/dashboard/domain"
	"launchdash/internal/modules/dashboard/dto"
	dashboardin "launchdash/internal/modules/dashboard/port/in"
	"launchdash/internal/modules/dashboard/service"
	apperrors "launchdash/internal/platform/errors"
)

type Interactor struct {
	svc *service.DashboardService
}

func NewInteractor(svc *service.DashboardService) dashboardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Layout(ctx context.Context) (dto.LayoutOutput, error) {
	layout, err := i.svc.Layout(ctx)
	if err != nil {
		return dto.LayoutOutput{}, err
	}
	return toLayoutOutput(layout), nil
}

func (i *Interactor) Pie(ctx context.Context, site string) (dto.FigureOutput, error) {
	fig, err := i.svc.Pie(ctx, siteOrAll(site))
	if err != nil {
		return dto.FigureOutput{}, err
	}
	return ToFigureOutput(fig), nil
}

func (i *Interactor) Scatter(ctx context.Context, input dto.ScatterInput) (dto.FigureOutput, error) {
	if err := checkRange(input.Low, input.High); err != nil {
		return dto.FigureOutput{}, err
	}
	fig, err := i.svc.Scatter(ctx, siteOrAll(input.Site), input.Low, input.High)
	if err != nil {
		return dto.FigureOutput{}, err
	}
	return ToFigureOutput(fig), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error) {
	if err := checkRange(input.State.Payload[0], input.State.Payload[1]); err != nil {
		return dto.UpdateOutput{}, err
	}
	st := domain.State{
		Site: siteOrAll(input.State.Site),
		Low:  input.State.Payload[0],
		High: input.State.Payload[1],
	}
	figs, err := i.svc.Update(ctx, input.Changed, st)
	if err != nil {
		return dto.UpdateOutput{}, err
	}
	out := dto.UpdateOutput{Outputs: make(map[string]dto.FigureOutput, len(figs))}
	for id, fig := range figs {
		out.Outputs[id] = ToFigureOutput(fig)
	}
	return out, nil
}

func (i *Interactor) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	format := domain.Format(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" {
		format = domain.FormatSVG
	}
	data, err := i.svc.Render(ctx, FromFigureOutput(input.Figure), format, input.Width, input.Height)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{ContentType: format.ContentType(), Data: data}, nil
}

// checkRange rejects NaN and infinite bounds. Every comparison against NaN
// is false, so a NaN bound would let every row through the filter.
func checkRange(low, high float64) error {
	for _, v := range []float64{low, high} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: payload bound %v is not a finite number", apperrors.ErrInvalidInput, v)
		}
	}
	return nil
}

// siteOrAll treats an empty selection as the all-sites sentinel, which is
// what a cleared dropdown sends.
func siteOrAll(site string) string {
	if strings.TrimSpace(site) == "" {
		return domain.AllSites
	}
	return site
}

func toLayoutOutput(l domain.Layout) dto.LayoutOutput {
	options := make([]dto.OptionOutput, 0, len(l.Dropdown.Options))
	for _, o := range l.Dropdown.Options {
		options = append(options, dto.OptionOutput{Label: o.Label, Value: o.Value})
	}
	marks := make([]dto.MarkOutput, 0, len(l.Slider.Marks))
	for _, m := range l.Slider.Marks {
		marks = append(marks, dto.MarkOutput{Value: m.Value, Label: m.Label})
	}
	return dto.LayoutOutput{
		Title: l.Title,
		Dropdown: dto.DropdownOutput{
			ID:          l.Dropdown.ID,
			Options:     options,
			Value:       l.Dropdown.Value,
			Placeholder: l.Dropdown.Placeholder,
			Searchable:  l.Dropdown.Searchable,
		},
		Slider: dto.SliderOutput{
			ID:    l.Slider.ID,
			Label: l.Slider.Label,
			Min:   l.Slider.Min,
			Max:   l.Slider.Max,
			Step:  l.Slider.Step,
			Marks: marks,
			Value: l.Slider.Value,
		},
		PieID:     l.PieID,
		ScatterID: l.ScatterID,
	}
}

func ToFigureOutput(f domain.Figure) dto.FigureOutput {
	out := dto.FigureOutput{
		Kind:   string(f.Kind),
		Title:  f.Title,
		Groups: f.Groups,
		XAxis:  toAxisOutput(f.XAxis),
		YAxis:  toAxisOutput(f.YAxis),
		Empty:  f.Empty,
	}
	for _, s := range f.Slices {
		out.Slices = append(out.Slices, dto.SliceOutput{Label: s.Label, Value: s.Value})
	}
	for _, p := range f.Points {
		out.Points = append(out.Points, dto.PointOutput{X: p.X, Y: p.Y, Group: p.Group, Hover: p.Hover})
	}
	return out
}

func FromFigureOutput(f dto.FigureOutput) domain.Figure {
	out := domain.Figure{
		Kind:   domain.Kind(f.Kind),
		Title:  f.Title,
		Groups: f.Groups,
		XAxis:  fromAxisOutput(f.XAxis),
		YAxis:  fromAxisOutput(f.YAxis),
		Empty:  f.Empty,
	}
	for _, s := range f.Slices {
		out.Slices = append(out.Slices, domain.Slice{Label: s.Label, Value: s.Value})
	}
	for _, p := range f.Points {
		out.Points = append(out.Points, domain.Point{X: p.X, Y: p.Y, Group: p.Group, Hover: p.Hover})
	}
	return out
}

func toAxisOutput(a domain.Axis) dto.AxisOutput {
	out := dto.AxisOutput{Label: a.Label}
	for _, t := range a.Ticks {
		out.Ticks = append(out.Ticks, dto.TickOutput{Value: t.Value, Label: t.Label})
	}
	return out
}

func fromAxisOutput(a dto.AxisOutput) domain.Axis {
	out := domain.Axis{Label: a.Label}
	for _, t := range a.Ticks {
		out.Ticks = append(out.Ticks, domain.Tick{Value: t.Value, Label: t.Label})
	}
	return out
}
