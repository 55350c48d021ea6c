// Package sink defines the abstract panel sink interface.
// Implementations (memory, solid) accept panel descriptors and parameter
// declarations behind this interface. The sink abstraction keeps the
// composition core independent of any particular CAD kernel: the core only
// pushes boxes, dimension values, formula bindings and placements.
package sink

// Field enumerates the dimension fields of a panel box.
type Field int

const (
	FieldLength Field = iota // box extent along local X
	FieldWidth               // box extent along local Y (thickness axis)
	FieldHeight              // box extent along local Z
)

func (f Field) String() string {
	switch f {
	case FieldLength:
		return "Length"
	case FieldWidth:
		return "Width"
	case FieldHeight:
		return "Height"
	default:
		return "unknown"
	}
}

// Rotation enumerates the fixed rotations a panel placement may carry.
// The set is closed: panel orientations map onto exactly these three.
type Rotation int

const (
	RotationIdentity Rotation = iota // no rotation
	RotationZ90                      // +90 degrees about the Z axis
	RotationXNeg90                   // -90 degrees about the X axis
)

func (r Rotation) String() string {
	switch r {
	case RotationIdentity:
		return "identity"
	case RotationZ90:
		return "rotate-z-90"
	case RotationXNeg90:
		return "rotate-x-neg-90"
	default:
		return "unknown"
	}
}

// Formula binding paths for placement coordinates. Dimension fields use the
// Field name as their path.
const (
	PathPlacementX = "Placement.Base.x"
	PathPlacementY = "Placement.Base.y"
	PathPlacementZ = "Placement.Base.z"
)

// BoxHandle is an opaque reference to a box created in a sink.
// Implementations wrap their internal representation.
type BoxHandle interface {
	// Name returns the identifier the box was created under.
	Name() string
}

// ContainerHandle is an opaque reference to a declared parameter container.
type ContainerHandle interface {
	// Namespace returns the container's namespace.
	Namespace() string
}

// Sink is the abstract boundary the composition core pushes panels through.
//
// Error contract: CreateBox fails with a DUPLICATE_NAME error when the name
// already exists in the target document; DeclareParameterContainer fails
// with DUPLICATE_NAMESPACE on a namespace collision. Any failure aborts the
// remaining steps of the composition that triggered it; no operation is
// retried and no partial rollback is performed here.
type Sink interface {
	// CreateBox creates a named box primitive.
	CreateBox(name string) (BoxHandle, error)

	// SetDimension assigns a literal value to a dimension field.
	SetDimension(h BoxHandle, field Field, value float64) error

	// SetFormula registers a live symbolic binding for a dimension field
	// (path "Length"|"Width"|"Height") or a placement coordinate
	// (path "Placement.Base.x"|"y"|"z").
	SetFormula(h BoxHandle, path string, formula string) error

	// SetPlacement assigns the literal translation components and the fixed
	// rotation. Components bound by formula carry a zero placeholder here
	// and are overridden by SetFormula.
	SetPlacement(h BoxHandle, translation [3]float64, rotation Rotation) error

	// DeclareParameterContainer creates a named parameter container.
	DeclareParameterContainer(namespace string) (ContainerHandle, error)

	// AddNamedParameter adds a parameter with a literal initial value to a
	// previously declared container.
	AddNamedParameter(c ContainerHandle, name string, initial float64) error
}
