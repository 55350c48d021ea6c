package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeNegativeDimension, "inner depth is %.1f", -10.0)
	if !strings.Contains(err.Error(), "NEGATIVE_DIMENSION") {
		t.Errorf("error string missing code: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "inner depth is -10.0") {
		t.Errorf("error string missing message: %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("kernel said no")
	err := Wrap(ErrCodeSinkCreate, cause, "creating panel %q", "left")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "kernel said no") {
		t.Errorf("error string missing cause: %q", err.Error())
	}
}

func TestIsMatchesCodeThroughChain(t *testing.T) {
	inner := New(ErrCodeDuplicateName, "panel %q already exists", "front")
	outer := fmt.Errorf("building plinth: %w", inner)

	if !Is(outer, ErrCodeDuplicateName) {
		t.Error("Is should find the code through fmt.Errorf wrapping")
	}
	if Is(outer, ErrCodeInvalidOrientation) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(outer); got != ErrCodeDuplicateName {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeDuplicateName)
	}
}

func TestIsWalksNestedCodes(t *testing.T) {
	inner := New(ErrCodeInvalidBackRatio, "back ratio 1.5 outside [0, 1]")
	outer := Wrap(ErrCodeInvalidPlan, inner, "assembly 2 (niche)")

	if !Is(outer, ErrCodeInvalidPlan) {
		t.Error("Is should match the outermost code")
	}
	if !Is(outer, ErrCodeInvalidBackRatio) {
		t.Error("Is should match a code buried under another coded error")
	}
	if got := GetCode(outer); got != ErrCodeInvalidPlan {
		t.Errorf("GetCode = %q, want outermost %q", got, ErrCodeInvalidPlan)
	}
}

func TestGetCodeOnPlainError(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}
