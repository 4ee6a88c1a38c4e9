package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidStatement, "statement %q is bad", "X")

	if err.Code != ErrCodeInvalidStatement {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidStatement)
	}
	want := `INVALID_STATEMENT: statement "X" is bad`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "render %s", "svg")

	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUnknownBond, "unknown bond")

	if !Is(err, ErrCodeUnknownBond) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeUnknownDirection) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeUnknownBond) {
		t.Error("Is() should not match plain errors")
	}

	// Code survives fmt wrapping.
	wrapped := fmt.Errorf("parse: %w", err)
	if !Is(wrapped, ErrCodeUnknownBond) {
		t.Error("Is() should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDuplicateAtom, "dup")); got != ErrCodeDuplicateAtom {
		t.Errorf("GetCode() = %s, want %s", got, ErrCodeDuplicateAtom)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "notation cannot be empty")
	if got := UserMessage(err); got != "notation cannot be empty" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q, want error string", got)
	}
}
