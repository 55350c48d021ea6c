package param

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink"
)

// declSink records parameter declarations and can simulate a namespace
// collision reported by the document.
type declSink struct {
	containers []string
	params     []string
}

type declContainer string

func (c declContainer) Namespace() string { return string(c) }

func (d *declSink) DeclareParameterContainer(namespace string) (sink.ContainerHandle, error) {
	for _, c := range d.containers {
		if c == namespace {
			return nil, errors.New(errors.ErrCodeDuplicateNamespace,
				"parameter container %q already exists", namespace)
		}
	}
	d.containers = append(d.containers, namespace)
	return declContainer(namespace), nil
}

func (d *declSink) AddNamedParameter(c sink.ContainerHandle, name string, initial float64) error {
	d.params = append(d.params, fmt.Sprintf("%s.%s=%g", c.Namespace(), name, initial))
	return nil
}

func (d *declSink) CreateBox(string) (sink.BoxHandle, error)                 { return nil, nil }
func (d *declSink) SetDimension(sink.BoxHandle, sink.Field, float64) error   { return nil }
func (d *declSink) SetFormula(sink.BoxHandle, string, string) error          { return nil }
func (d *declSink) SetPlacement(sink.BoxHandle, [3]float64, sink.Rotation) error {
	return nil
}

func TestDeclarePreservesOrder(t *testing.T) {
	s := NewSet("cab").
		Put("Width", 800).
		Put("Height", 500).
		Put("Thickness", 15)

	d := &declSink{}
	if err := s.Declare(d); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}

	want := []string{"cab.Width=800", "cab.Height=500", "cab.Thickness=15"}
	if !reflect.DeepEqual(d.params, want) {
		t.Errorf("declared params = %v, want %v", d.params, want)
	}
}

func TestPutReplaceKeepsPosition(t *testing.T) {
	s := NewSet("cab").Put("Width", 800).Put("Height", 500).Put("Width", 900)

	if got := s.Names(); !reflect.DeepEqual(got, []string{"Width", "Height"}) {
		t.Errorf("Names() = %v", got)
	}
	if v, _ := s.Get("Width"); v != 900 {
		t.Errorf("Width = %v, want 900", v)
	}
}

func TestDeclareDuplicateNamespace(t *testing.T) {
	d := &declSink{}
	if err := NewSet("cab").Put("Width", 800).Declare(d); err != nil {
		t.Fatalf("first Declare failed: %v", err)
	}
	err := NewSet("cab").Put("Depth", 300).Declare(d)
	if !errors.Is(err, errors.ErrCodeDuplicateNamespace) {
		t.Fatalf("want DUPLICATE_NAMESPACE, got %v", err)
	}
}

func TestRefQualifiedName(t *testing.T) {
	s := NewSet("plinth").Put("Depth", 300)
	if got := s.Ref("Depth").String(); got != "plinth.Depth" {
		t.Errorf("Ref = %q, want %q", got, "plinth.Depth")
	}
}
