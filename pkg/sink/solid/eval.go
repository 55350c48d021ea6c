package solid

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// evalEnv is the host evaluation context for formula bindings. Each
// declared parameter container becomes a starlark struct under its
// namespace, so the qualified reference "cab.Height" and the arithmetic
// the formula serializer emits resolve directly.
type evalEnv struct {
	predeclared starlark.StringDict
}

// evalEnv builds the evaluation environment from the declared containers.
func (d *Document) evalEnv() evalEnv {
	pre := starlark.StringDict{}
	for ns, c := range d.containers {
		members := starlark.StringDict{}
		for name, v := range c.values {
			members[name] = starlark.Float(v)
		}
		pre[ns] = starlarkstruct.FromStringDict(starlarkstruct.Default, members)
	}
	return evalEnv{predeclared: pre}
}

// eval evaluates one formula expression to a number.
func (e evalEnv) eval(formula string) (float64, error) {
	thread := &starlark.Thread{Name: "casework"}
	v, err := starlark.Eval(thread, "<formula>", formula, e.predeclared)
	if err != nil {
		return 0, fmt.Errorf("evaluating formula %q: %w", formula, err)
	}
	if f, ok := starlark.AsFloat(v); ok {
		return f, nil
	}
	return 0, fmt.Errorf("formula %q evaluated to %s, want a number", formula, v.Type())
}
