package param

import (
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink"
)

// Set is a named, ordered collection of externally visible parameters.
// Downstream formulas reference a parameter P in set N as "N.P".
//
// A Set is built up before declaration and is effectively write-once:
// composition code only reads it after Declare. It is not safe for
// concurrent mutation, which the single-threaded composition flow never
// needs.
type Set struct {
	namespace string
	order     []string
	values    map[string]float64
}

// NewSet creates an empty parameter set with the given namespace.
func NewSet(namespace string) *Set {
	return &Set{
		namespace: namespace,
		values:    make(map[string]float64),
	}
}

// Namespace returns the set's namespace.
func (s *Set) Namespace() string { return s.namespace }

// Put adds a parameter with a literal initial value, keeping declaration
// order. Re-putting an existing name updates the value in place without
// changing its position. Returns the set for chaining.
func (s *Set) Put(name string, initial float64) *Set {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = initial
	return s
}

// Names returns the parameter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Get returns a parameter's initial value.
func (s *Set) Get(name string) (float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Ref returns a formula Value referencing the named parameter. The
// reference is purely textual; declaring the set is what makes it resolve
// in the host document.
func (s *Set) Ref(name string) Value {
	return Ref(s.namespace, name)
}

// Declare pushes the container and every parameter, in declaration order,
// to the sink. A namespace collision reported by the sink surfaces as a
// DUPLICATE_NAMESPACE error; any other sink failure propagates wrapped.
func (s *Set) Declare(snk sink.Sink) error {
	c, err := snk.DeclareParameterContainer(s.namespace)
	if err != nil {
		if errors.Is(err, errors.ErrCodeDuplicateNamespace) {
			return err
		}
		return errors.Wrap(errors.ErrCodeSinkCreate, err,
			"declaring parameter container %q", s.namespace)
	}
	for _, name := range s.order {
		if err := snk.AddNamedParameter(c, name, s.values[name]); err != nil {
			return errors.Wrap(errors.ErrCodeSinkCreate, err,
				"adding parameter %s.%s", s.namespace, name)
		}
	}
	return nil
}
