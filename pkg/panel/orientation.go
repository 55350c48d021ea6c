// Package panel implements the panel placement model and builder.
//
// A panel is a thin rectangular box whose nominal dimensions are width,
// height and thickness. Its orientation fixes which document axis absorbs
// the thickness and how the caller-supplied reference position relates to
// the occupied volume. The builder resolves orientation and placement,
// classifies every scalar field as literal or formula, and pushes exactly
// one box per call to the external sink.
package panel

import (
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink"
)

// Orientation is one of the three fixed panel orientations. The set is
// closed; there are no custom orientations.
type Orientation int

const (
	// Front is a vertical panel in the XZ plane, thickness along Y.
	// It occupies [x, x+width] x [y, y+thickness] x [z, z+height].
	Front Orientation = iota

	// Side is a vertical panel in the YZ plane (Front rotated +90 degrees
	// about Z), thickness along X. The thickness extends toward negative X
	// from the reference coordinate: [x-thickness, x] x [y, y+width] x
	// [z, z+height]. Supplying the outer x of an envelope therefore folds
	// the panel inward with no subtraction at the call site.
	Side

	// Top is a horizontal panel in the XY plane (Front rotated -90 degrees
	// about X), thickness along Z, extending toward negative Z:
	// [x, x+width] x [y, y+height] x [z-thickness, z].
	Top
)

func (o Orientation) String() string {
	switch o {
	case Front:
		return "front"
	case Side:
		return "side"
	case Top:
		return "top"
	default:
		return "unknown"
	}
}

// Valid reports whether o is a member of the closed orientation set.
func (o Orientation) Valid() bool {
	return o == Front || o == Side || o == Top
}

// ParseOrientation converts a tag string to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "front":
		return Front, nil
	case "side":
		return Side, nil
	case "top":
		return Top, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation,
		"unknown orientation %q, expected front, side, or top", s)
}

// Rotation returns the fixed rotation the orientation maps to.
func (o Orientation) Rotation() (sink.Rotation, error) {
	switch o {
	case Front:
		return sink.RotationIdentity, nil
	case Side:
		return sink.RotationZ90, nil
	case Top:
		return sink.RotationXNeg90, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation,
		"unknown orientation tag %d", int(o))
}

// Extents returns the axis-aligned interval occupied by a panel with
// literal dimensions at a literal reference position, per the placement
// rule table. Composition tests use it to assert abutting, non-overlapping
// geometry without involving a geometry kernel.
func (o Orientation) Extents(width, height, thickness float64, pos [3]float64) (min, max [3]float64, err error) {
	x, y, z := pos[0], pos[1], pos[2]
	switch o {
	case Front:
		return [3]float64{x, y, z}, [3]float64{x + width, y + thickness, z + height}, nil
	case Side:
		return [3]float64{x - thickness, y, z}, [3]float64{x, y + width, z + height}, nil
	case Top:
		return [3]float64{x, y, z - thickness}, [3]float64{x + width, y + height, z}, nil
	}
	return min, max, errors.New(errors.ErrCodeInvalidOrientation,
		"unknown orientation tag %d", int(o))
}
