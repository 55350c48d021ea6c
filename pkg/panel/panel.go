package panel

import (
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// Spec describes a panel to build: nominal dimensions, orientation and the
// reference position. Each scalar may independently be a literal or a
// formula.
type Spec struct {
	Name        string
	Width       param.Value
	Height      param.Value
	Thickness   param.Value
	Orientation Orientation
	Position    [3]param.Value
}

// Panel is the descriptor of a built panel: the box dimensions and
// placement exactly as issued to the sink. A Panel is a leaf output
// artifact; once built it is never mutated by the core again.
type Panel struct {
	Name        string
	Length      param.Value // box extent along local X (nominal width)
	Thickness   param.Value // box extent along local Y
	Height      param.Value // box extent along local Z
	Orientation Orientation
	Translation [3]param.Value
	Rotation    sink.Rotation
}

// placementPaths maps translation component index to its formula path.
var placementPaths = [3]string{
	sink.PathPlacementX,
	sink.PathPlacementY,
	sink.PathPlacementZ,
}

// Build resolves orientation and placement for spec and issues the panel
// to the sink: one CreateBox, a literal or formula assignment for each of
// the three dimension fields, one SetPlacement carrying the literal
// translation components and the fixed rotation, and a formula binding for
// every symbolic translation component.
//
// A duplicate name reported by the sink propagates unchanged; any other
// sink failure wraps as SINK_CREATE. Nothing is retried.
func Build(snk sink.Sink, spec Spec) (Panel, error) {
	rot, err := spec.Orientation.Rotation()
	if err != nil {
		return Panel{}, err
	}

	h, err := snk.CreateBox(spec.Name)
	if err != nil {
		if errors.Is(err, errors.ErrCodeDuplicateName) {
			return Panel{}, err
		}
		return Panel{}, errors.Wrap(errors.ErrCodeSinkCreate, err,
			"creating panel %q", spec.Name)
	}

	// Box dimensions per the orientation rule table: every orientation
	// maps width to Length, thickness to Width and height to Height; the
	// rotation alone decides which document axis each lands on.
	dims := []struct {
		field sink.Field
		value param.Value
	}{
		{sink.FieldLength, spec.Width},
		{sink.FieldWidth, spec.Thickness},
		{sink.FieldHeight, spec.Height},
	}
	for _, d := range dims {
		if err := assignDimension(snk, h, d.field, d.value); err != nil {
			return Panel{}, errors.Wrap(errors.ErrCodeSinkCreate, err,
				"panel %q: %s", spec.Name, d.field)
		}
	}

	// Literal translation components go into the placement; formula
	// components leave a zero placeholder there and bind symbolically.
	var translation [3]float64
	for i, v := range spec.Position {
		if isLit, num, _ := v.Assignment(); isLit {
			translation[i] = num
		}
	}
	if err := snk.SetPlacement(h, translation, rot); err != nil {
		return Panel{}, errors.Wrap(errors.ErrCodeSinkCreate, err,
			"panel %q: placement", spec.Name)
	}
	for i, v := range spec.Position {
		isLit, _, formula := v.Assignment()
		if isLit {
			continue
		}
		if err := snk.SetFormula(h, placementPaths[i], formula); err != nil {
			return Panel{}, errors.Wrap(errors.ErrCodeSinkCreate, err,
				"panel %q: %s", spec.Name, placementPaths[i])
		}
	}

	return Panel{
		Name:        spec.Name,
		Length:      spec.Width,
		Thickness:   spec.Thickness,
		Height:      spec.Height,
		Orientation: spec.Orientation,
		Translation: spec.Position,
		Rotation:    rot,
	}, nil
}

// assignDimension pushes one dimension field as a literal or a formula.
func assignDimension(snk sink.Sink, h sink.BoxHandle, field sink.Field, v param.Value) error {
	isLit, num, formula := v.Assignment()
	if isLit {
		return snk.SetDimension(h, field, num)
	}
	return snk.SetFormula(h, field.String(), formula)
}

// Extents returns the volume the panel occupies when every field is
// literal. The second return is false when any dimension or translation
// component is symbolic.
func (p Panel) Extents() (min, max [3]float64, ok bool) {
	scalars := []param.Value{
		p.Length, p.Height, p.Thickness,
		p.Translation[0], p.Translation[1], p.Translation[2],
	}
	for _, v := range scalars {
		if !v.IsLiteral() {
			return min, max, false
		}
	}
	var pos [3]float64
	for i, v := range p.Translation {
		pos[i] = v.Literal()
	}
	min, max, err := p.Orientation.Extents(p.Length.Literal(), p.Height.Literal(), p.Thickness.Literal(), pos)
	if err != nil {
		return min, max, false
	}
	return min, max, true
}
