package compose

import (
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// Back-ratio cutoffs. These are exact branch boundaries, not rounding
// conveniences: a ratio at or below the open threshold emits no back
// panel, a ratio at or above the closed threshold emits a single full
// back, anything between emits two symmetric strips.
const (
	BackRatioOpen   = 0.001
	BackRatioClosed = 0.999
)

// NicheSpec describes a niche: an open-front box of four panels plus an
// optional back. Base and top are dominant, spanning the full width and
// depth; left and right are sandwiched vertically between them. BackRatio
// is the fraction of the inner height closed by back panels: 0 open,
// 1 fully closed, intermediate values give a bottom strip and a top strip
// with a centered gap.
type NicheSpec struct {
	Name      string
	Height    param.Value
	Width     param.Value
	Depth     param.Value
	Thickness param.Value
	Position  [3]param.Value
	BackRatio float64
}

// Niche emits the panels of a niche in fixed order: left, right, base,
// top, then back panels per BackRatio. A ratio outside [0, 1] is rejected
// with INVALID_BACK_RATIO rather than clamped; derived dimensions that
// compute to zero or below under literal inputs fail with
// NEGATIVE_DIMENSION. Both checks run before any panel is created.
func Niche(snk sink.Sink, spec NicheSpec) ([]panel.Panel, error) {
	if spec.BackRatio < 0 || spec.BackRatio > 1 {
		return nil, errors.New(errors.ErrCodeInvalidBackRatio,
			"back ratio %g outside [0, 1]", spec.BackRatio)
	}

	t := spec.Thickness
	innerHeight := param.Sub(spec.Height, twice(t))
	innerWidth := param.Sub(spec.Width, twice(t))

	checks := []struct {
		what string
		v    param.Value
	}{
		{"niche inner height", innerHeight},
		{"niche inner width", innerWidth},
		{"niche depth", spec.Depth},
	}
	for _, check := range checks {
		if err := ensurePositive(check.what, check.v); err != nil {
			return nil, err
		}
	}

	x, y, z := spec.Position[0], spec.Position[1], spec.Position[2]

	specs := []panel.Spec{
		{
			Name:        joinName(spec.Name, "left"),
			Width:       spec.Depth,
			Height:      innerHeight,
			Thickness:   t,
			Orientation: panel.Side,
			Position:    [3]param.Value{add(x, t), y, add(z, t)},
		},
		{
			Name:        joinName(spec.Name, "right"),
			Width:       spec.Depth,
			Height:      innerHeight,
			Thickness:   t,
			Orientation: panel.Side,
			Position:    [3]param.Value{add(x, spec.Width), y, add(z, t)},
		},
		{
			Name:        joinName(spec.Name, "base"),
			Width:       spec.Width,
			Height:      spec.Depth,
			Thickness:   t,
			Orientation: panel.Top,
			Position:    [3]param.Value{x, y, add(z, t)},
		},
		{
			Name:        joinName(spec.Name, "top"),
			Width:       spec.Width,
			Height:      spec.Depth,
			Thickness:   t,
			Orientation: panel.Top,
			Position:    [3]param.Value{x, y, add(z, spec.Height)},
		},
	}
	specs = append(specs, backSpecs(spec, innerHeight, innerWidth)...)

	panels := make([]panel.Panel, 0, len(specs))
	for _, ps := range specs {
		p, err := panel.Build(snk, ps)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	return panels, nil
}

// backSpecs derives the back panel specs for a niche per its back ratio.
func backSpecs(spec NicheSpec, innerHeight, innerWidth param.Value) []panel.Spec {
	if spec.BackRatio <= BackRatioOpen {
		return nil
	}

	t := spec.Thickness
	x, y, z := spec.Position[0], spec.Position[1], spec.Position[2]
	backX := add(x, t)
	backY := add(y, param.Sub(spec.Depth, t))

	if spec.BackRatio >= BackRatioClosed {
		return []panel.Spec{{
			Name:        joinName(spec.Name, "back"),
			Width:       innerWidth,
			Height:      innerHeight,
			Thickness:   t,
			Orientation: panel.Front,
			Position:    [3]param.Value{backX, backY, add(z, t)},
		}}
	}

	// Two strips: one anchored at the bottom of the inner cavity, one at
	// the top, leaving a centered gap of innerHeight*(1-ratio).
	stripHeight := param.Div(param.Mul(param.Lit(spec.BackRatio), innerHeight), param.Lit(2))
	topZ := param.Sub(param.Sub(add(z, spec.Height), t), stripHeight)

	return []panel.Spec{
		{
			Name:        joinName(spec.Name, "back_bottom"),
			Width:       innerWidth,
			Height:      stripHeight,
			Thickness:   t,
			Orientation: panel.Front,
			Position:    [3]param.Value{backX, backY, add(z, t)},
		},
		{
			Name:        joinName(spec.Name, "back_top"),
			Width:       innerWidth,
			Height:      stripHeight,
			Thickness:   t,
			Orientation: panel.Front,
			Position:    [3]param.Value{backX, backY, topZ},
		},
	}
}
