package engine

import (
	"strings"
	"testing"

	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/sink/memory"
)

func evalOK(t *testing.T, source string) ([]panel.Panel, *memory.Document) {
	t.Helper()
	doc := memory.New()
	panels, evalErrs, err := NewEngine().Evaluate(source, doc)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return panels, doc
}

func TestEmptySource(t *testing.T) {
	panels, doc := evalOK(t, "   \n\t  ")
	if len(panels) != 0 {
		t.Errorf("expected no panels, got %d", len(panels))
	}
	if len(doc.Log()) != 0 {
		t.Errorf("expected empty log, got %v", doc.Log())
	}
}

func TestParseError(t *testing.T) {
	doc := memory.New()
	panels, evalErrs, err := NewEngine().Evaluate("(panel \"x\"", doc)
	if err != nil {
		t.Fatalf("parse failure should not be fatal: %v", err)
	}
	if panels != nil {
		t.Errorf("expected nil panels, got %v", panels)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
}

func TestPanelBuiltin(t *testing.T) {
	panels, doc := evalOK(t, `
		; one side panel, rotated
		(panel "left" :width 300 :height 470 :thickness 15
		       :orientation :side :at (vec3 15 0 15))
	`)
	if len(panels) != 1 || panels[0].Name != "left" {
		t.Fatalf("panels = %v", panels)
	}
	if panels[0].Orientation != panel.Side {
		t.Errorf("orientation = %v, want side", panels[0].Orientation)
	}
	want := []string{
		"create-box left",
		"set-dim left Length 300",
		"set-dim left Width 15",
		"set-dim left Height 470",
		"set-placement left (15,0,15) rotate-z-90",
	}
	got := doc.Log()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("log:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestPanelMissingDimension(t *testing.T) {
	doc := memory.New()
	_, evalErrs, err := NewEngine().Evaluate(`(panel "x" :width 10 :height 20)`, doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(evalErrs) == 0 || !strings.Contains(evalErrs[0].Message, "thickness") {
		t.Errorf("expected missing thickness error, got %v", evalErrs)
	}
}

func TestParamsAndRef(t *testing.T) {
	panels, doc := evalOK(t, `
		(def cab (params "cab" :Width 800 :Thickness 15))
		(panel "shelf"
		       :width (sub (ref cab :Width) (mul 2 (ref cab :Thickness)))
		       :height 300
		       :thickness (ref cab :Thickness)
		       :orientation :top)
	`)
	if len(panels) != 1 {
		t.Fatalf("panels = %v", panels)
	}
	log := strings.Join(doc.Log(), "\n")
	for _, want := range []string{
		"declare-container cab",
		"add-param cab.Width 800",
		"add-param cab.Thickness 15",
		"set-formula shelf Length = cab.Width - 2 * cab.Thickness",
		"set-formula shelf Width = cab.Thickness",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}

func TestRefUnknownParameter(t *testing.T) {
	doc := memory.New()
	_, evalErrs, err := NewEngine().Evaluate(`
		(def cab (params "cab" :Width 800))
		(ref cab :Height)
	`, doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(evalErrs) == 0 || !strings.Contains(evalErrs[0].Message, "Height") {
		t.Errorf("expected unknown parameter error, got %v", evalErrs)
	}
}

func TestPlinthBuiltin(t *testing.T) {
	panels, _ := evalOK(t, `
		(plinth "base" :height 150 :width 800 :depth 300 :thickness 15
		        :offset-front 30)
	`)
	want := []string{"base_front", "base_back", "base_left", "base_right"}
	if len(panels) != len(want) {
		t.Fatalf("panels = %v", panels)
	}
	for i, p := range panels {
		if p.Name != want[i] {
			t.Errorf("panel %d = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestNicheBackRatio(t *testing.T) {
	panels, _ := evalOK(t, `
		(niche "box" :height 500 :width 800 :depth 300 :thickness 15
		       :back-ratio 0.5)
	`)
	var names []string
	for _, p := range panels {
		names = append(names, p.Name)
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "box_back_bottom") || !strings.Contains(joined, "box_back_top") {
		t.Errorf("half back ratio should emit two strips, got %v", names)
	}
}

func TestWardrobeBuiltin(t *testing.T) {
	panels, doc := evalOK(t, `
		(wardrobe :namespace "w" :height 500 :width 800 :depth 300
		          :thickness 15 :plinth-height 150 :back-ratio 1)
	`)
	if len(panels) != 9 {
		t.Fatalf("expected 9 panels, got %d: %v", len(panels), panels)
	}
	if doc.Container("w") == nil {
		t.Error("wardrobe should declare namespace w")
	}
	if doc.Box("niche_base") == nil {
		t.Error("niche_base missing from document")
	}
}

func TestDuplicateNameSurfaces(t *testing.T) {
	doc := memory.New()
	_, evalErrs, err := NewEngine().Evaluate(`
		(panel "x" :width 10 :height 20 :thickness 5)
		(panel "x" :width 10 :height 20 :thickness 5)
	`, doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected duplicate name error")
	}
}

func TestKebabCaseAndComments(t *testing.T) {
	// back-ratio must read as one keyword, not a subtraction, and ;
	// comments must not swallow the code after them.
	panels, _ := evalOK(t, `
		;; closed niche
		(niche "n" :height 500 :width 800 :depth 300 :thickness 15
		       :back-ratio 1) ; fully closed
	`)
	var names []string
	for _, p := range panels {
		names = append(names, p.Name)
	}
	if strings.Join(names, " ") != "n_left n_right n_base n_top n_back" {
		t.Errorf("names = %v", names)
	}
}

func TestFreshEnvironmentPerEvaluate(t *testing.T) {
	e := NewEngine()
	doc := memory.New()
	if _, evalErrs, err := e.Evaluate(`(def x 42)`, doc); err != nil || len(evalErrs) > 0 {
		t.Fatalf("first eval: %v %v", evalErrs, err)
	}
	_, evalErrs, err := e.Evaluate(`(panel "p" :width x :height 10 :thickness 5)`, memory.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(evalErrs) == 0 {
		t.Error("x from a previous evaluation should not be visible")
	}
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"keyword", `(panel :width 10)`, `(panel "__kw_width" 10)`},
		{"kebab keyword", `:back-ratio`, `"__kw_back-ratio"`},
		{"kebab identifier", `(my-func 1)`, `(my_func 1)`},
		{"minus untouched", `(- 10 3)`, `(- 10 3)`},
		{"string untouched", `"a-b :c"`, `"a-b :c"`},
		{"comment", "; hi\n(x)", "// hi\n(x)"},
		{"assignment", `x := 1`, `x := 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
