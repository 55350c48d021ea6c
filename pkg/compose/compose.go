// Package compose assembles panels into carcase structures.
//
// Each composition (plinth, niche, wardrobe) derives inner dimensions from
// the nominal outer envelope, places every member panel by the sandwich
// topology rules, and emits the panels through the panel builder in a
// fixed order. Dominant panels span the full envelope along their axis;
// sandwiched panels are reduced by twice the member thickness and fit the
// gap between the dominant pair exactly.
//
// Compositions are plain ordered call sequences: given identical inputs
// they emit identical panel descriptors, and a sink failure aborts the
// remaining panels with no rollback (transactionality belongs to the
// document layer behind the sink). A composition has no identity beyond
// the panels it emitted; the returned slice is a record, not a live object.
package compose

import (
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/param"
)

// joinName prefixes a member panel name with the composition name.
func joinName(prefix, part string) string {
	if prefix == "" {
		return part
	}
	return prefix + "_" + part
}

// twice returns 2*v.
func twice(v param.Value) param.Value {
	return param.Mul(param.Lit(2), v)
}

// sub returns a - b, passing a through unchanged when b is the literal 0
// so that unused offsets do not clutter emitted formulas.
func sub(a, b param.Value) param.Value {
	if b.IsLiteral() && b.Literal() == 0 {
		return a
	}
	return param.Sub(a, b)
}

// add returns a + b with the same literal-zero shortcut as sub.
func add(a, b param.Value) param.Value {
	if b.IsLiteral() && b.Literal() == 0 {
		return a
	}
	if a.IsLiteral() && a.Literal() == 0 {
		return b
	}
	return param.Add(a, b)
}

// ensurePositive surfaces a NEGATIVE_DIMENSION error when a derived
// dimension computes to zero or below under literal inputs. Symbolic
// values pass unchecked: the core never evaluates formulas, so a
// degenerate parametric assembly is the host document's to report.
func ensurePositive(what string, v param.Value) error {
	if v.IsLiteral() && v.Literal() <= 0 {
		return errors.New(errors.ErrCodeNegativeDimension,
			"%s computes to %s, must be positive", what, v.String())
	}
	return nil
}
