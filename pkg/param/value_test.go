package param

import "testing"

func TestLiteralFolding(t *testing.T) {
	tests := []struct {
		name string
		got  Value
		want float64
	}{
		{"add", Add(Lit(2), Lit(3)), 5},
		{"sub", Sub(Lit(500), Lit(30)), 470},
		{"mul", Mul(Lit(2), Lit(15)), 30},
		{"div", Div(Lit(9), Lit(2)), 4.5},
		{"nested", Sub(Lit(500), Mul(Lit(2), Lit(15))), 470},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsLiteral() {
				t.Fatalf("result should be literal, got formula %q", tt.got.String())
			}
			if tt.got.Literal() != tt.want {
				t.Errorf("got %v, want %v", tt.got.Literal(), tt.want)
			}
		})
	}
}

func TestFormulaPropagation(t *testing.T) {
	h := Ref("cab", "Height")
	tkn := Ref("cab", "Thickness")

	inner := Sub(h, Mul(Lit(2), tkn))
	if inner.IsLiteral() {
		t.Fatal("formula operand should force a formula result")
	}
	if got, want := inner.String(), "cab.Height - 2 * cab.Thickness"; got != want {
		t.Errorf("formula text = %q, want %q", got, want)
	}
}

func TestFormulaParenthesization(t *testing.T) {
	w := Ref("cab", "Width")
	tkn := Ref("cab", "Thickness")

	tests := []struct {
		name string
		got  Value
		want string
	}{
		{
			"mul over sub needs parens",
			Mul(Sub(w, tkn), Lit(2)),
			"(cab.Width - cab.Thickness) * 2",
		},
		{
			"right operand of sub keeps parens",
			Sub(w, Sub(tkn, Lit(1))),
			"cab.Width - (cab.Thickness - 1)",
		},
		{
			"right operand of div keeps parens",
			Div(w, Mul(Lit(2), tkn)),
			"cab.Width / (2 * cab.Thickness)",
		},
		{
			"sum of products stays flat",
			Add(Mul(Lit(2), w), Mul(Lit(3), tkn)),
			"2 * cab.Width + 3 * cab.Thickness",
		},
		{
			"negative literal parenthesized under mul",
			Mul(Lit(-1), w),
			"(-1) * cab.Width",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawFormulaIsGuarded(t *testing.T) {
	v := Raw("cab.Width + 10")
	doubled := Mul(v, Lit(2))
	if got, want := doubled.String(), "(cab.Width + 10) * 2"; got != want {
		t.Errorf("opaque operand not parenthesized: got %q, want %q", got, want)
	}
}

func TestAssignment(t *testing.T) {
	isLit, num, formula := Lit(42).Assignment()
	if !isLit || num != 42 || formula != "" {
		t.Errorf("literal assignment = (%v, %v, %q)", isLit, num, formula)
	}

	isLit, num, formula = Ref("p", "Width").Assignment()
	if isLit || num != 0 || formula != "p.Width" {
		t.Errorf("formula assignment = (%v, %v, %q)", isLit, num, formula)
	}
}

func TestZeroValue(t *testing.T) {
	var v Value
	if !v.IsLiteral() || v.Literal() != 0 {
		t.Errorf("zero Value should be the literal 0, got %q", v.String())
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{15, "15"},
		{117.5, "117.5"},
		{0.001, "0.001"},
	}
	for _, tt := range tests {
		if got := Lit(tt.f).String(); got != tt.want {
			t.Errorf("Lit(%v).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
