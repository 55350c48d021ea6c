// Package param implements the parametric value model for casework.
//
// A Value is either a literal number or a symbolic formula over qualified
// parameter names ("namespace.name"). Arithmetic over Values propagates the
// distinction automatically: combining literals folds to a literal, while
// any formula operand produces a formula whose text is the serialized
// expression tree. The core never evaluates formulas; it only carries them
// to the sink, which binds them in the host evaluation context.
package param

import "strconv"

// precedence levels for the serializer. Addition and subtraction bind
// loosest, multiplication and division tighter; leaves are atomic.
const (
	precAdd  = 1
	precMul  = 2
	precLeaf = 3
)

// expr is a node in a formula expression tree.
type expr interface {
	// prec returns the node's binding precedence.
	prec() int
	// text renders the node without outer parentheses.
	text() string
}

// refExpr is an atomic reference or opaque formula fragment.
type refExpr struct {
	s      string
	opaque bool // true when the text may contain operators of its own
}

func (r refExpr) prec() int {
	if r.opaque {
		// Opaque text must be parenthesized whenever a surrounding
		// operator could capture part of it.
		return 0
	}
	return precLeaf
}

func (r refExpr) text() string { return r.s }

// numExpr is a literal operand inside a formula.
type numExpr float64

func (n numExpr) prec() int {
	if n < 0 {
		return 0 // negative literals need parens under * and /
	}
	return precLeaf
}

func (n numExpr) text() string { return formatNumber(float64(n)) }

// binExpr is a binary arithmetic operation.
type binExpr struct {
	op   byte // one of + - * /
	l, r expr
}

func (b binExpr) prec() int {
	if b.op == '+' || b.op == '-' {
		return precAdd
	}
	return precMul
}

func (b binExpr) text() string {
	l := render(b.l, b.prec(), false)
	r := render(b.r, b.prec(), true)
	return l + " " + string(b.op) + " " + r
}

// render serializes child inside a parent of the given precedence,
// adding parentheses only where the textual form would otherwise
// re-associate. right marks the right operand of a non-commutative op.
func render(child expr, parentPrec int, right bool) string {
	cp := child.prec()
	if cp < parentPrec || (right && cp == parentPrec) {
		return "(" + child.text() + ")"
	}
	return child.text()
}

// formatNumber renders a literal the way formulas expect: shortest
// representation that round-trips.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Value is a dimension or coordinate that is either a literal number or a
// symbolic formula. The zero Value is the literal 0.
type Value struct {
	tree expr // nil when the value is a literal
	num  float64
}

// Lit returns a literal Value.
func Lit(f float64) Value {
	return Value{num: f}
}

// Raw returns a formula Value carrying an opaque expression string, for
// formulas authored outside the combinators (e.g. script input). The text
// is treated as atomic but parenthesized when composed under an operator
// that could capture it.
func Raw(formula string) Value {
	return Value{tree: refExpr{s: formula, opaque: true}}
}

// Ref returns a formula Value referencing parameter name in the given
// namespace. Pure and side-effect free.
func Ref(namespace, name string) Value {
	return Value{tree: refExpr{s: namespace + "." + name}}
}

// IsLiteral reports whether the value is a literal number.
func (v Value) IsLiteral() bool { return v.tree == nil }

// Assignment classifies the value for the panel builder. Literal values
// yield (true, number, ""); formula values yield (false, 0, formula). The
// numeric placeholder of a formula value is never trusted for geometry.
func (v Value) Assignment() (isLiteral bool, num float64, formula string) {
	if v.tree == nil {
		return true, v.num, ""
	}
	return false, 0, v.tree.text()
}

// Literal returns the numeric value of a literal Value. It panics on a
// formula value; callers classify with IsLiteral or Assignment first.
func (v Value) Literal() float64 {
	if v.tree != nil {
		panic("param: Literal called on formula value " + v.tree.text())
	}
	return v.num
}

// String renders the value: formula text, or the formatted number.
func (v Value) String() string {
	if v.tree == nil {
		return formatNumber(v.num)
	}
	return v.tree.text()
}

// operand converts a Value into an expression-tree node.
func (v Value) operand() expr {
	if v.tree == nil {
		return numExpr(v.num)
	}
	return v.tree
}

// combine builds the arithmetic result of two values. All-literal operands
// fold numerically; otherwise the result is a formula.
func combine(op byte, a, b Value) Value {
	if a.tree == nil && b.tree == nil {
		switch op {
		case '+':
			return Lit(a.num + b.num)
		case '-':
			return Lit(a.num - b.num)
		case '*':
			return Lit(a.num * b.num)
		default:
			return Lit(a.num / b.num)
		}
	}
	return Value{tree: binExpr{op: op, l: a.operand(), r: b.operand()}}
}

// Add returns a + b.
func Add(a, b Value) Value { return combine('+', a, b) }

// Sub returns a - b.
func Sub(a, b Value) Value { return combine('-', a, b) }

// Mul returns a * b.
func Mul(a, b Value) Value { return combine('*', a, b) }

// Div returns a / b. Division of literals follows float64 semantics;
// guarding against a zero divisor is the caller's concern.
func Div(a, b Value) Value { return combine('/', a, b) }
