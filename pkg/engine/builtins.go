package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/marceneiro/casework/pkg/compose"
	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding the need to register keyword symbols as globals.
//
//  2. Kebab-case to underscore: back-ratio -> back_ratio, since zygomys
//     reads a hyphen between identifiers as subtraction.
//
//  3. ; line comments become // comments.
//
// All three respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Hyphen between identifier characters is kebab-case, not minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpValue wraps a param.Value so scripts can thread symbolic dimensions
// between builtins.
type sexpValue struct {
	v param.Value
}

func (s *sexpValue) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(value %s)", s.v.String())
}
func (s *sexpValue) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a position triple.
type sexpVec3 struct {
	v [3]param.Value
}

func (s *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %s %s %s)", s.v[0].String(), s.v[1].String(), s.v[2].String())
}
func (s *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpParams wraps a declared parameter set.
type sexpParams struct {
	set *param.Set
}

func (s *sexpParams) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(params %q)", s.set.Namespace())
}
func (s *sexpParams) Type() *zygo.RegisteredType { return nil }

// sexpPanels wraps the panels emitted by one builtin call.
type sexpPanels struct {
	panels []panel.Panel
}

func (s *sexpPanels) SexpString(ps *zygo.PrintState) string {
	names := make([]string, len(s.panels))
	for i, p := range s.panels {
		names[i] = p.Name
	}
	return fmt.Sprintf("(panels %s)", strings.Join(names, " "))
}
func (s *sexpPanels) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string and returns the
// bare keyword name if so.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list. keys preserves keyword order for builtins where order matters.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	keys       []string
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if _, seen := result.kw[name]; !seen {
				result.keys = append(result.keys, name)
			}
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_side) and plain strings ("side").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toValue converts a number or a value reference to a param.Value.
func toValue(s zygo.Sexp) (param.Value, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return param.Lit(float64(v.Val)), nil
	case *zygo.SexpFloat:
		return param.Lit(v.Val), nil
	case *sexpValue:
		return v.v, nil
	}
	return param.Value{}, fmt.Errorf("expected number or value, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) ([3]param.Value, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return [3]param.Value{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toOrientation(s zygo.Sexp) (panel.Orientation, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected orientation keyword (:front, :side, :top): %w", err)
	}
	return panel.ParseOrientation(name)
}

// valueKW pulls a required dimension keyword as a param.Value.
func valueKW(pa kwArgs, builtin, key string) (param.Value, error) {
	s, ok := pa.kw[key]
	if !ok {
		return param.Value{}, fmt.Errorf("%s: missing :%s", builtin, key)
	}
	v, err := toValue(s)
	if err != nil {
		return param.Value{}, fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	return v, nil
}

// floatKW pulls an optional numeric keyword, returning def when absent.
func floatKW(pa kwArgs, builtin, key string, def float64) (float64, error) {
	s, ok := pa.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	return f, nil
}

// positionKW pulls an optional :at keyword, defaulting to the origin.
func positionKW(pa kwArgs, builtin string) ([3]param.Value, error) {
	s, ok := pa.kw["at"]
	if !ok {
		return [3]param.Value{}, nil
	}
	v, err := toVec3(s)
	if err != nil {
		return [3]param.Value{}, fmt.Errorf("%s: at: %w", builtin, err)
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// emitter carries the evaluation's target sink and accumulates everything
// the script emits, in emission order.
type emitter struct {
	snk    sink.Sink
	panels []panel.Panel
}

func (em *emitter) record(panels []panel.Panel) {
	em.panels = append(em.panels, panels...)
}

// registerBuiltins installs the casework DSL into a zygomys environment.
// The builtins emit into the emitter's sink as they run.
//
// Source must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, em *emitter) {

	// -----------------------------------------------------------------------
	// (params "cab" :Width 800 :Height 500 :Thickness 15)
	//
	// Declares a parameter set in the sink. Keyword order is declaration
	// order.
	// -----------------------------------------------------------------------
	env.AddFunction("params", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("params requires a namespace argument")
		}
		namespace, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("params: namespace: %w", err)
		}

		ps := param.NewSet(namespace)
		for _, key := range pa.keys {
			f, err := toFloat64(pa.kw[key])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("params: %s: %w", key, err)
			}
			ps.Put(key, f)
		}
		if err := ps.Declare(em.snk); err != nil {
			return zygo.SexpNull, err
		}

		return &sexpParams{set: ps}, nil
	})

	// -----------------------------------------------------------------------
	// (ref cab :Width) -> symbolic reference into a parameter set
	// -----------------------------------------------------------------------
	env.AddFunction("ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("ref requires a parameter set and a name, got %d arguments", len(args))
		}
		ps, ok := args[0].(*sexpParams)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("ref: expected parameter set, got %T (%s)", args[0], args[0].SexpString(nil))
		}
		paramName, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ref: name: %w", err)
		}
		if _, ok := ps.set.Get(paramName); !ok {
			return zygo.SexpNull, fmt.Errorf("ref: no parameter %q in set %q", paramName, ps.set.Namespace())
		}
		return &sexpValue{v: ps.set.Ref(paramName)}, nil
	})

	// -----------------------------------------------------------------------
	// (add a b) (sub a b) (mul a b) (div a b) on numbers and values.
	// Pure literals fold; anything symbolic stays a formula.
	// -----------------------------------------------------------------------
	binOps := map[string]func(a, b param.Value) param.Value{
		"add": param.Add,
		"sub": param.Sub,
		"mul": param.Mul,
		"div": param.Div,
	}
	for opName, op := range binOps {
		op := op
		env.AddFunction(opName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 arguments, got %d", name, len(args))
			}
			a, err := toValue(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			b, err := toValue(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpValue{v: op(a, b)}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (vec3 15 0 (ref cab :Thickness))
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v [3]param.Value
		for i, comp := range [3]string{"x", "y", "z"} {
			val, err := toValue(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", comp, err)
			}
			v[i] = val
		}
		return &sexpVec3{v: v}, nil
	})

	// -----------------------------------------------------------------------
	// (panel "left" :width 300 :height 470 :thickness 15
	//        :orientation :side :at (vec3 15 0 15))
	// -----------------------------------------------------------------------
	env.AddFunction("panel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("panel requires a name argument")
		}
		panelName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("panel: name: %w", err)
		}

		spec := panel.Spec{Name: panelName, Orientation: panel.Front}
		if spec.Width, err = valueKW(pa, "panel", "width"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Height, err = valueKW(pa, "panel", "height"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Thickness, err = valueKW(pa, "panel", "thickness"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["orientation"]; ok {
			if spec.Orientation, err = toOrientation(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: orientation: %w", err)
			}
		}
		if spec.Position, err = positionKW(pa, "panel"); err != nil {
			return zygo.SexpNull, err
		}

		p, err := panel.Build(em.snk, spec)
		if err != nil {
			return zygo.SexpNull, err
		}
		em.record([]panel.Panel{p})
		return &sexpPanels{panels: []panel.Panel{p}}, nil
	})

	// -----------------------------------------------------------------------
	// (plinth "base" :height 150 :width 800 :depth 300 :thickness 15
	//         :offset-front 30 :at (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("plinth", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("plinth requires a name argument")
		}
		plinthName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plinth: name: %w", err)
		}

		spec := compose.PlinthSpec{Name: plinthName}
		if spec.Height, err = valueKW(pa, "plinth", "height"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Width, err = valueKW(pa, "plinth", "width"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Depth, err = valueKW(pa, "plinth", "depth"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Thickness, err = valueKW(pa, "plinth", "thickness"); err != nil {
			return zygo.SexpNull, err
		}
		offsets := map[string]*param.Value{
			"offset-front": &spec.Offsets.Front,
			"offset-back":  &spec.Offsets.Back,
			"offset-left":  &spec.Offsets.Left,
			"offset-right": &spec.Offsets.Right,
		}
		for key, dst := range offsets {
			if v, ok := pa.kw[key]; ok {
				if *dst, err = toValue(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("plinth: %s: %w", key, err)
				}
			}
		}
		if spec.Position, err = positionKW(pa, "plinth"); err != nil {
			return zygo.SexpNull, err
		}

		panels, err := compose.Plinth(em.snk, spec)
		if err != nil {
			return zygo.SexpNull, err
		}
		em.record(panels)
		return &sexpPanels{panels: panels}, nil
	})

	// -----------------------------------------------------------------------
	// (niche "box" :height 500 :width 800 :depth 300 :thickness 15
	//        :back-ratio 0.5 :at (vec3 0 0 150))
	// -----------------------------------------------------------------------
	env.AddFunction("niche", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("niche requires a name argument")
		}
		nicheName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("niche: name: %w", err)
		}

		spec := compose.NicheSpec{Name: nicheName}
		if spec.Height, err = valueKW(pa, "niche", "height"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Width, err = valueKW(pa, "niche", "width"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Depth, err = valueKW(pa, "niche", "depth"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Thickness, err = valueKW(pa, "niche", "thickness"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.BackRatio, err = floatKW(pa, "niche", "back-ratio", 1); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Position, err = positionKW(pa, "niche"); err != nil {
			return zygo.SexpNull, err
		}

		panels, err := compose.Niche(em.snk, spec)
		if err != nil {
			return zygo.SexpNull, err
		}
		em.record(panels)
		return &sexpPanels{panels: panels}, nil
	})

	// -----------------------------------------------------------------------
	// (wardrobe :namespace "w" :height 2000 :width 800 :depth 300
	//           :thickness 15 :plinth-height 150 :back-ratio 1)
	// -----------------------------------------------------------------------
	env.AddFunction("wardrobe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		var err error
		spec := compose.WardrobeSpec{}
		if len(pa.positional) > 0 {
			if spec.Name, err = toString(pa.positional[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("wardrobe: name: %w", err)
			}
		}
		if v, ok := pa.kw["namespace"]; ok {
			if spec.Namespace, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("wardrobe: namespace: %w", err)
			}
		}
		dims := map[string]*float64{
			"height":        &spec.Height,
			"width":         &spec.Width,
			"depth":         &spec.Depth,
			"thickness":     &spec.Thickness,
			"plinth-height": &spec.PlinthHeight,
		}
		for key, dst := range dims {
			v, ok := pa.kw[key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("wardrobe: missing :%s", key)
			}
			if *dst, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("wardrobe: %s: %w", key, err)
			}
		}
		if spec.BackRatio, err = floatKW(pa, "wardrobe", "back-ratio", 1); err != nil {
			return zygo.SexpNull, err
		}

		panels, err := compose.Wardrobe(em.snk, spec)
		if err != nil {
			return zygo.SexpNull, err
		}
		em.record(panels)
		return &sexpPanels{panels: panels}, nil
	})
}
