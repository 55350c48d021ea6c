package compose

import (
	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// Offsets inset a plinth from its nominal envelope, one distance per side.
// The zero value means no inset.
type Offsets struct {
	Front param.Value
	Back  param.Value
	Left  param.Value
	Right param.Value
}

// PlinthSpec describes a plinth: a four-panel base frame. Front and back
// are dominant, spanning the full effective width; left and right are
// sandwiched between them, reduced by twice the thickness along the depth.
// That ordering is fixed.
type PlinthSpec struct {
	Name      string
	Height    param.Value
	Width     param.Value
	Depth     param.Value
	Thickness param.Value
	Position  [3]param.Value
	Offsets   Offsets
}

// Plinth emits the four panels of a plinth frame in fixed order: front,
// back, left, right. Derived dimensions that compute to zero or below
// under literal inputs fail with NEGATIVE_DIMENSION before any panel is
// created.
func Plinth(snk sink.Sink, spec PlinthSpec) ([]panel.Panel, error) {
	t := spec.Thickness

	// Effective envelope after per-side offsets, and the inner depth the
	// sandwiched sides must fit exactly.
	ew := sub(sub(spec.Width, spec.Offsets.Left), spec.Offsets.Right)
	ed := sub(sub(spec.Depth, spec.Offsets.Front), spec.Offsets.Back)
	id := param.Sub(ed, twice(t))

	for _, check := range []struct {
		what string
		v    param.Value
	}{
		{"plinth effective width", ew},
		{"plinth effective depth", ed},
		{"plinth inner depth", id},
		{"plinth height", spec.Height},
	} {
		if err := ensurePositive(check.what, check.v); err != nil {
			return nil, err
		}
	}

	startX := add(spec.Position[0], spec.Offsets.Left)
	startY := add(spec.Position[1], spec.Offsets.Front)
	z := spec.Position[2]

	specs := []panel.Spec{
		{
			Name:        joinName(spec.Name, "front"),
			Width:       ew,
			Height:      spec.Height,
			Thickness:   t,
			Orientation: panel.Front,
			Position:    [3]param.Value{startX, startY, z},
		},
		{
			Name:        joinName(spec.Name, "back"),
			Width:       ew,
			Height:      spec.Height,
			Thickness:   t,
			Orientation: panel.Front,
			Position:    [3]param.Value{startX, add(startY, param.Sub(ed, t)), z},
		},
		{
			Name:        joinName(spec.Name, "left"),
			Width:       id,
			Height:      spec.Height,
			Thickness:   t,
			Orientation: panel.Side,
			Position:    [3]param.Value{add(startX, t), add(startY, t), z},
		},
		{
			Name:        joinName(spec.Name, "right"),
			Width:       id,
			Height:      spec.Height,
			Thickness:   t,
			Orientation: panel.Side,
			Position:    [3]param.Value{add(startX, ew), add(startY, t), z},
		},
	}

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
