package domain

import (
	"fmt"
	"slices"

	apperrors "launchdash/internal/platform/errors"
)

// Compute produces a fresh figure from the dataset and widget state.
type Compute func(ds Dataset, st State) Figure

// Callback binds one output to the inputs it depends on.
type Callback struct {
	Output  string
	Inputs  []string
	Compute Compute
}

// Registry holds the reactive bindings of the page. Changing an input
// re-runs exactly the callbacks that declare it.
type Registry struct {
	callbacks []Callback
	inputs    map[string]struct{}
}

func NewRegistry(callbacks ...Callback) (*Registry, error) {
	r := &Registry{inputs: map[string]struct{}{}}
	outputs := map[string]struct{}{}
	for _, cb := range callbacks {
		if cb.Output == "" || cb.Compute == nil {
			return nil, fmt.Errorf("%w: callback needs an output and a compute func", apperrors.ErrInvalidInput)
		}
		if _, dup := outputs[cb.Output]; dup {
			return nil, fmt.Errorf("%w: output %q bound twice", apperrors.ErrInvalidInput, cb.Output)
		}
		if len(cb.Inputs) == 0 {
			return nil, fmt.Errorf("%w: output %q declares no inputs", apperrors.ErrInvalidInput, cb.Output)
		}
		outputs[cb.Output] = struct{}{}
		for _, in := range cb.Inputs {
			r.inputs[in] = struct{}{}
		}
		r.callbacks = append(r.callbacks, cb)
	}
	return r, nil
}

// DefaultRegistry binds the pie to the site dropdown and the scatter to
// both the dropdown and the payload slider.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Callback{
			Output: PieChartID,
			Inputs: []string{SiteDropdownID},
			Compute: func(ds Dataset, st State) Figure {
				return PieFigure(ds, st.Site)
			},
		},
		Callback{
			Output: ScatterChartID,
			Inputs: []string{SiteDropdownID, PayloadSliderID},
			Compute: func(ds Dataset, st State) Figure {
				return ScatterFigure(ds, st.Site, st.Low, st.High)
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Outputs lists the bound output ids in registration order.
func (r *Registry) Outputs() []string {
	out := make([]string, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		out = append(out, cb.Output)
	}
	return out
}

// Affected returns the callbacks to run for the changed inputs. No changed
// inputs means the initial render, which runs every callback.
func (r *Registry) Affected(changed []string) ([]Callback, error) {
	for _, id := range changed {
		if _, ok := r.inputs[id]; !ok {
			return nil, fmt.Errorf("%w: unknown input %q", apperrors.ErrInvalidInput, id)
		}
	}
	if len(changed) == 0 {
		return slices.Clone(r.callbacks), nil
	}
	out := []Callback{}
	for _, cb := range r.callbacks {
		for _, in := range cb.Inputs {
			if slices.Contains(changed, in) {
				out = append(out, cb)
				break
			}
		}
	}
	return out, nil
}

// Dispatch runs the affected callbacks and returns their figures keyed by
// output id.
func (r *Registry) Dispatch(ds Dataset, st State, changed []string) (map[string]Figure, error) {
	callbacks, err := r.Affected(changed)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Figure, len(callbacks))
	for _, cb := range callbacks {
		out[cb.Output] = cb.Compute(ds, st)
	}
	return out, nil
}
