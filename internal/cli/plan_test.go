package cli

import (
	"strings"
	"testing"

	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/sink/memory"
)

func TestParsePlan(t *testing.T) {
	plan, err := parsePlan([]byte(`
[[assembly]]
kind = "plinth"
name = "base"
height = 150
width = 800
depth = 300
thickness = 15
offsets = { front = 30 }

[[assembly]]
kind = "niche"
name = "box"
height = 500
width = 800
depth = 300
thickness = 15
back_ratio = 0.5
position = [0, 0, 150]
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Assemblies) != 2 {
		t.Fatalf("assemblies = %d, want 2", len(plan.Assemblies))
	}
	if plan.Assemblies[0].Offsets.Front != 30 {
		t.Errorf("front offset = %g, want 30", plan.Assemblies[0].Offsets.Front)
	}
	if plan.Assemblies[1].Position != [3]float64{0, 0, 150} {
		t.Errorf("position = %v", plan.Assemblies[1].Position)
	}
	if r := plan.Assemblies[1].backRatio(); r != 0.5 {
		t.Errorf("back ratio = %g, want 0.5", r)
	}
	if r := plan.Assemblies[0].backRatio(); r != 1 {
		t.Errorf("unset back ratio should default to 1, got %g", r)
	}
}

func TestParsePlanEmpty(t *testing.T) {
	_, err := parsePlan([]byte("# nothing here\n"))
	if !errors.Is(err, errors.ErrCodeInvalidPlan) {
		t.Fatalf("want INVALID_PLAN, got %v", err)
	}
}

func TestParsePlanMalformed(t *testing.T) {
	_, err := parsePlan([]byte("[[assembly]\nkind ="))
	if !errors.Is(err, errors.ErrCodeInvalidPlan) {
		t.Fatalf("want INVALID_PLAN, got %v", err)
	}
}

func TestPlanApply(t *testing.T) {
	plan, err := parsePlan([]byte(`
[[assembly]]
kind = "wardrobe"
namespace = "w"
height = 500
width = 800
depth = 300
thickness = 15
plinth_height = 150
`))
	if err != nil {
		t.Fatal(err)
	}

	doc := memory.New()
	panels, err := plan.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(panels) != 9 {
		t.Fatalf("panels = %d, want 9", len(panels))
	}
	if doc.Container("w") == nil {
		t.Error("namespace w not declared")
	}
}

func TestPlanApplyUnknownKind(t *testing.T) {
	plan := &Plan{Assemblies: []Assembly{{Kind: "drawer"}}}
	_, err := plan.Apply(memory.New())
	if !errors.Is(err, errors.ErrCodeInvalidPlan) {
		t.Fatalf("want INVALID_PLAN, got %v", err)
	}
	if !strings.Contains(err.Error(), "drawer") {
		t.Errorf("error should name the kind: %v", err)
	}
}

func TestPlanApplySurfacesCompositionCode(t *testing.T) {
	plan := &Plan{Assemblies: []Assembly{{
		Kind: "niche", Name: "n",
		Height: 500, Width: 800, Depth: 300, Thickness: 15,
		BackRatio: ptr(1.5),
	}}}
	_, err := plan.Apply(memory.New())
	if !errors.Is(err, errors.ErrCodeInvalidBackRatio) {
		t.Fatalf("want INVALID_BACK_RATIO in chain, got %v", err)
	}
}

func TestPlanApplyPanelOrientation(t *testing.T) {
	plan := &Plan{Assemblies: []Assembly{{
		Kind: "panel", Name: "p",
		Width: 100, Height: 50, Thickness: 10,
		Orientation: "sideways",
	}}}
	_, err := plan.Apply(memory.New())
	if !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Fatalf("want INVALID_ORIENTATION in chain, got %v", err)
	}
}

func ptr(f float64) *float64 { return &f }
