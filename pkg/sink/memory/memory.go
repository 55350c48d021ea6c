// Package memory implements sink.Sink as an in-memory recording document.
//
// Every operation is appended to an ordered log, which makes determinism
// and idempotence checks a plain slice comparison. The memory sink enforces
// the same name-collision contract a real CAD document would, so error
// paths can be exercised without a kernel.
package memory

import (
	"fmt"

	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink"
)

// Box is a recorded box primitive.
type Box struct {
	name        string
	Dims        map[sink.Field]float64
	Formulas    map[string]string // binding path -> formula text
	Translation [3]float64
	Rotation    sink.Rotation
}

// Name returns the box identifier.
func (b *Box) Name() string { return b.name }

// Container is a recorded parameter container.
type Container struct {
	namespace string
	Order     []string
	Values    map[string]float64
}

// Namespace returns the container's namespace.
func (c *Container) Namespace() string { return c.namespace }

// Document is an in-memory sink. The zero value is not usable; create one
// with New.
type Document struct {
	boxes      map[string]*Box
	boxOrder   []string
	containers map[string]*Container
	log        []string
}

// Compile-time interface check.
var _ sink.Sink = (*Document)(nil)

// New returns an empty recording document.
func New() *Document {
	return &Document{
		boxes:      make(map[string]*Box),
		containers: make(map[string]*Container),
	}
}

// CreateBox creates a named box, failing on a name collision.
func (d *Document) CreateBox(name string) (sink.BoxHandle, error) {
	if _, exists := d.boxes[name]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateName,
			"box %q already exists in document", name)
	}
	b := &Box{
		name:     name,
		Dims:     make(map[sink.Field]float64),
		Formulas: make(map[string]string),
	}
	d.boxes[name] = b
	d.boxOrder = append(d.boxOrder, name)
	d.logf("create-box %s", name)
	return b, nil
}

// SetDimension records a literal dimension assignment.
func (d *Document) SetDimension(h sink.BoxHandle, field sink.Field, value float64) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.Dims[field] = value
	d.logf("set-dim %s %s %g", b.name, field, value)
	return nil
}

// SetFormula records a symbolic binding.
func (d *Document) SetFormula(h sink.BoxHandle, path, formula string) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.Formulas[path] = formula
	d.logf("set-formula %s %s = %s", b.name, path, formula)
	return nil
}

// SetPlacement records the literal translation and fixed rotation.
func (d *Document) SetPlacement(h sink.BoxHandle, translation [3]float64, rotation sink.Rotation) error {
	b, err := d.box(h)
	if err != nil {
		return err
	}
	b.Translation = translation
	b.Rotation = rotation
	d.logf("set-placement %s (%g,%g,%g) %s",
		b.name, translation[0], translation[1], translation[2], rotation)
	return nil
}

// DeclareParameterContainer creates a parameter container, failing on a
// namespace collision.
func (d *Document) DeclareParameterContainer(namespace string) (sink.ContainerHandle, error) {
	if _, exists := d.containers[namespace]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateNamespace,
			"parameter container %q already exists in document", namespace)
	}
	c := &Container{
		namespace: namespace,
		Values:    make(map[string]float64),
	}
	d.containers[namespace] = c
	d.logf("declare-container %s", namespace)
	return c, nil
}

// AddNamedParameter records a parameter declaration.
func (d *Document) AddNamedParameter(h sink.ContainerHandle, name string, initial float64) error {
	c, ok := h.(*Container)
	if !ok || d.containers[c.namespace] != c {
		return fmt.Errorf("memory: container handle %v does not belong to this document", h)
	}
	if _, exists := c.Values[name]; !exists {
		c.Order = append(c.Order, name)
	}
	c.Values[name] = initial
	d.logf("add-param %s.%s %g", c.namespace, name, initial)
	return nil
}

// Box returns a recorded box by name, or nil.
func (d *Document) Box(name string) *Box {
	return d.boxes[name]
}

// Boxes returns the recorded boxes in creation order.
func (d *Document) Boxes() []*Box {
	out := make([]*Box, 0, len(d.boxOrder))
	for _, name := range d.boxOrder {
		out = append(out, d.boxes[name])
	}
	return out
}

// Container returns a recorded parameter container by namespace, or nil.
func (d *Document) Container(namespace string) *Container {
	return d.containers[namespace]
}

// Log returns the ordered operation log.
func (d *Document) Log() []string {
	out := make([]string, len(d.log))
	copy(out, d.log)
	return out
}

func (d *Document) box(h sink.BoxHandle) (*Box, error) {
	b, ok := h.(*Box)
	if !ok || d.boxes[b.name] != b {
		return nil, fmt.Errorf("memory: box handle %v does not belong to this document", h)
	}
	return b, nil
}

func (d *Document) logf(format string, args ...any) {
	d.log = append(d.log, fmt.Sprintf(format, args...))
}
