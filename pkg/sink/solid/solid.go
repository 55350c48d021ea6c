// Package solid implements sink.Sink on the github.com/deadsy/sdfx CAD
// library. Panels accumulate as box descriptors while a composition runs;
// Realize then resolves every formula binding against the declared
// parameter containers and produces positioned solids that can report
// bounding boxes, tessellate to a triangle mesh, or export to STL.
//
// Formula resolution belongs here, not in the composition core: the sink
// is the host evaluation context the formulas were written for.
package solid

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink"
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// box accumulates the state of one panel between CreateBox and Realize.
type box struct {
	name        string
	dims        map[sink.Field]float64
	formulas    map[string]string
	translation [3]float64
	rotation    sink.Rotation
}

// Name returns the box identifier.
func (b *box) Name() string { return b.name }

// container holds one declared parameter namespace.
type container struct {
	namespace string
	order     []string
	values    map[string]float64
}

// Namespace returns the container's namespace.
func (c *container) Namespace() string { return c.namespace }

// Document is an sdfx-backed sink. Create one with New.
type Document struct {
	boxes      map[string]*box
	order      []string
	containers map[string]*container
}

// Compile-time interface check.
var _ sink.Sink = (*Document)(nil)

// New returns an empty solid document.
func New() *Document {
	return &Document{
		boxes:      make(map[string]*box),
		containers: make(map[string]*container),
	}
}

// CreateBox creates a named box, failing on a name collision.
func (d *Document) CreateBox(name string) (sink.BoxHandle, error) {
	if _, exists := d.boxes[name]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateName,
			"box %q already exists in document", name)
	}
	b := &box{
		name:     name,
		dims:     make(map[sink.Field]float64),
		formulas: make(map[string]string),
	}
	d.boxes[name] = b
	d.order = append(d.order, name)
	return b, nil
}

// SetDimension assigns a literal dimension.
func (d *Document) SetDimension(h sink.BoxHandle, field sink.Field, value float64) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.dims[field] = value
	return nil
}

// SetFormula registers a symbolic binding, resolved at Realize time.
func (d *Document) SetFormula(h sink.BoxHandle, path, formula string) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.formulas[path] = formula
	return nil
}

// SetPlacement assigns the literal translation and fixed rotation.
func (d *Document) SetPlacement(h sink.BoxHandle, translation [3]float64, rotation sink.Rotation) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.translation = translation
	b.rotation = rotation
	return nil
}

// DeclareParameterContainer creates a parameter container, failing on a
// namespace collision.
func (d *Document) DeclareParameterContainer(namespace string) (sink.ContainerHandle, error) {
	if _, exists := d.containers[namespace]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateNamespace,
			"parameter container %q already exists in document", namespace)
	}
	c := &container{
		namespace: namespace,
		values:    make(map[string]float64),
	}
	d.containers[namespace] = c
	return c, nil
}

// AddNamedParameter records a parameter value formulas can reference.
func (d *Document) AddNamedParameter(h sink.ContainerHandle, name string, initial float64) error {
	c, ok := h.(*container)
	if !ok || d.containers[c.namespace] != c {
		return fmt.Errorf("solid: container handle %v does not belong to this document", h)
	}
	if _, exists := c.values[name]; !exists {
		c.order = append(c.order, name)
	}
	c.values[name] = initial
	return nil
}

func (d *Document) box(h sink.BoxHandle) (*box, error) {
	b, ok := h.(*box)
	if !ok || d.boxes[b.name] != b {
		return nil, fmt.Errorf("solid: box handle %v does not belong to this document", h)
	}
	return b, nil
}

// Solid is a realized, positioned panel.
type Solid struct {
	Name        string
	Dims        [3]float64 // resolved length, thickness, height
	Translation [3]float64 // resolved translation
	Rotation    sink.Rotation
	shape       sdf.SDF3
}

// BoundingBox returns the solid's axis-aligned bounding box.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	bb := s.shape.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// placement paths indexed by translation component.
var placementPaths = [3]string{
	sink.PathPlacementX,
	sink.PathPlacementY,
	sink.PathPlacementZ,
}

// Realize resolves every formula binding and builds one positioned solid
// per box, in creation order. An unresolvable formula fails the whole
// realization; nothing is partially kept.
func (d *Document) Realize() ([]*Solid, error) {
	env := d.evalEnv()

	solids := make([]*Solid, 0, len(d.order))
	for _, name := range d.order {
		b := d.boxes[name]
		s, err := d.realizeBox(b, env)
		if err != nil {
			return nil, fmt.Errorf("realizing %q: %w", name, err)
		}
		solids = append(solids, s)
	}
	return solids, nil
}

// realizeBox resolves one box and positions it. The box solid is built
// with its minimum corner at the origin so placement translations match
// the panel model, then rotated and translated in one transform.
func (d *Document) realizeBox(b *box, env evalEnv) (*Solid, error) {
	var dims [3]float64
	for i, field := range []sink.Field{sink.FieldLength, sink.FieldWidth, sink.FieldHeight} {
		if formula, bound := b.formulas[field.String()]; bound {
			v, err := env.eval(formula)
			if err != nil {
				return nil, err
			}
			dims[i] = v
		} else {
			dims[i] = b.dims[field]
		}
	}
	for i := range dims {
		if dims[i] <= 0 {
			return nil, fmt.Errorf("dimension %d resolved to %g, must be positive", i, dims[i])
		}
	}

	tr := b.translation
	for i, path := range placementPaths {
		if formula, bound := b.formulas[path]; bound {
			v, err := env.eval(formula)
			if err != nil {
				return nil, err
			}
			tr[i] = v
		}
	}

	shape, err := sdf.Box3D(v3.Vec{X: dims[0], Y: dims[1], Z: dims[2]}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Box3D: %w", err)
	}

	// Shift from center-origin to min-corner-origin, rotate about that
	// corner, then translate to the reference position.
	m := sdf.Translate3d(v3.Vec{X: tr[0], Y: tr[1], Z: tr[2]}).
		Mul(rotationMatrix(b.rotation)).
		Mul(sdf.Translate3d(v3.Vec{X: dims[0] / 2, Y: dims[1] / 2, Z: dims[2] / 2}))

	return &Solid{
		Name:        b.name,
		Dims:        dims,
		Translation: tr,
		Rotation:    b.rotation,
		shape:       sdf.Transform3D(shape, m),
	}, nil
}

// rotationMatrix maps the closed rotation set to transform matrices.
func rotationMatrix(r sink.Rotation) sdf.M44 {
	switch r {
	case sink.RotationZ90:
		return sdf.RotateZ(math.Pi / 2)
	case sink.RotationXNeg90:
		return sdf.RotateX(-math.Pi / 2)
	default:
		return sdf.Identity3d()
	}
}

// union realizes the document and returns the union of all solids.
func (d *Document) union() (sdf.SDF3, error) {
	solids, err := d.Realize()
	if err != nil {
		return nil, err
	}
	if len(solids) == 0 {
		return nil, fmt.Errorf("document has no solids")
	}
	shapes := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		shapes[i] = s.shape
	}
	return sdf.Union3D(shapes...), nil
}

// ToMesh tessellates the union of all panels with marching cubes.
func (d *Document) ToMesh(cells int) (*Mesh, error) {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	u, err := d.union()
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(u, renderer)

	numTri := len(triangles)
	vertices := make([]float32, 0, numTri*9)
	normals := make([]float32, 0, numTri*9)
	indices := make([]uint32, 0, numTri*3)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// ToSTL writes the union of all panels to an STL file.
func (d *Document) ToSTL(path string, cells int) error {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	u, err := d.union()
	if err != nil {
		return err
	}
	render.ToSTL(u, path, render.NewMarchingCubesUniform(cells))
	return nil
}
