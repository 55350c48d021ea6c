package compose

import (
	"fmt"

	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// WardrobeSpec describes a wardrobe: a plinth with a niche stacked on top,
// both driven by one shared parameter set so the assembly stays
// live-editable as a whole. Dimensions are literal here; the composition
// turns them into named parameters and threads symbolic references through
// both sub-assemblies. Namespace must be unique within the target
// document; there is no implicit default.
type WardrobeSpec struct {
	Name         string
	Namespace    string
	Height       float64 // niche height, above the plinth
	Width        float64
	Depth        float64
	Thickness    float64
	PlinthHeight float64
	BackRatio    float64
}

// Parameter names declared by Wardrobe, in declaration order.
const (
	ParamHeight       = "Height"
	ParamWidth        = "Width"
	ParamDepth        = "Depth"
	ParamThickness    = "Thickness"
	ParamPlinthHeight = "PlinthHeight"
)

// Wardrobe declares the shared parameter set, builds the plinth at z=0 and
// the niche at z=plinth height, and returns all emitted panels in order.
// Sub-assembly names carry distinct prefixes, so no plinth panel ever
// collides with a niche panel. Derived dimensions are validated
// numerically up front: the sub-assemblies receive only symbolic values
// and skip checks the core cannot evaluate.
func Wardrobe(snk sink.Sink, spec WardrobeSpec) ([]panel.Panel, error) {
	if spec.Namespace == "" {
		return nil, fmt.Errorf("wardrobe: namespace required")
	}
	if spec.PlinthHeight < 0 {
		return nil, errors.New(errors.ErrCodeNegativeDimension,
			"plinth height %g, must not be negative", spec.PlinthHeight)
	}
	derived := []struct {
		what string
		v    float64
	}{
		{"niche inner height", spec.Height - 2*spec.Thickness},
		{"niche inner width", spec.Width - 2*spec.Thickness},
		{"plinth inner depth", spec.Depth - 2*spec.Thickness},
	}
	for _, d := range derived {
		if d.v <= 0 {
			return nil, errors.New(errors.ErrCodeNegativeDimension,
				"%s computes to %g, must be positive", d.what, d.v)
		}
	}

	ps := param.NewSet(spec.Namespace).
		Put(ParamHeight, spec.Height).
		Put(ParamWidth, spec.Width).
		Put(ParamDepth, spec.Depth).
		Put(ParamThickness, spec.Thickness).
		Put(ParamPlinthHeight, spec.PlinthHeight)
	if err := ps.Declare(snk); err != nil {
		return nil, err
	}

	panels, err := Plinth(snk, PlinthSpec{
		Name:      joinName(spec.Name, "plinth"),
		Height:    ps.Ref(ParamPlinthHeight),
		Width:     ps.Ref(ParamWidth),
		Depth:     ps.Ref(ParamDepth),
		Thickness: ps.Ref(ParamThickness),
	})
	if err != nil {
		return nil, err
	}

	nichePanels, err := Niche(snk, NicheSpec{
		Name:      joinName(spec.Name, "niche"),
		Height:    ps.Ref(ParamHeight),
		Width:     ps.Ref(ParamWidth),
		Depth:     ps.Ref(ParamDepth),
		Thickness: ps.Ref(ParamThickness),
		Position:  [3]param.Value{param.Lit(0), param.Lit(0), ps.Ref(ParamPlinthHeight)},
		BackRatio: spec.BackRatio,
	})
	if err != nil {
		return nil, err
	}

	return append(panels, nichePanels...), nil
}
