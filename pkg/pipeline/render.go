package pipeline

import (
	"context"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/mesh"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render"
)

// =============================================================================
// Layout Artifacts
// =============================================================================

// RenderLayout renders res in every format of opts.
func RenderLayout(res layout.Result, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	vp := opts.Viewport()
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case render.FormatSVG:
			data, err = render.FaceSVG(res, vp, render.WithTitle(opts.Variant))
		case render.FormatJSON:
			data, err = render.JSON(res)
		case render.FormatText:
			data = []byte(render.Preview(res, vp, PreviewCols, PreviewRows) + "\n")
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

// =============================================================================
// Building Artifacts
// =============================================================================

// Model is the JSON artifact of a building: the plan and the box-set mesh
// composed from it.
type Model struct {
	Plan *building.BuildingPlan `json:"plan"`
	Mesh mesh.Mesh              `json:"mesh"`
}

// ComposeModel composes plan with the reference box kernel.
func ComposeModel(ctx context.Context, plan *building.BuildingPlan) (Model, error) {
	m, err := building.Compose(ctx, mesh.NewBoxKernel(), plan, mesh.DefaultBooleanOptions())
	if err != nil {
		return Model{}, err
	}
	return Model{Plan: plan, Mesh: m}, nil
}

// RenderPlan renders plan in every format of opts.
func RenderPlan(ctx context.Context, plan *building.BuildingPlan, opts BuildingOptions) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case render.FormatSVG:
			data, err = render.ElevationSVG(plan, opts.View)
		case render.FormatJSON:
			var model Model
			if model, err = ComposeModel(ctx, plan); err == nil {
				data, err = render.JSON(model)
			}
		case render.FormatText:
			vp := render.StackViewport(plan.Size[2], plan.Size[0])
			data = []byte(render.Preview(plan.Stack, vp, PreviewCols, PreviewRows) + "\n")
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}
