package gff3

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	e := &ParseError{Line: 5, Field: "column count", Msg: "expected 9 columns, got 7", Content: "a\tb"}
	msg := e.Error()
	if !strings.Contains(msg, "line 5") || !strings.Contains(msg, "column count") {
		t.Fatalf("ParseError.Error() = %q, missing expected fields", msg)
	}
}

func TestFatalErrorUnwraps(t *testing.T) {
	cause := &IdentityError{Line: 1, ID: "g1", Msg: "boom"}
	fe := fatal(cause)
	if fe.Error() != cause.Error() {
		t.Fatalf("FatalError.Error() = %q, want %q", fe.Error(), cause.Error())
	}
	if !errors.Is(fe, fe) {
		t.Fatal("a FatalError should be errors.Is-comparable to itself")
	}
	var target *IdentityError
	if !errors.As(fe, &target) {
		t.Fatal("errors.As should unwrap FatalError down to its IdentityError cause")
	}
	if target.ID != "g1" {
		t.Fatalf("unwrapped cause ID = %q, want g1", target.ID)
	}
}

func TestOrphanErrorMessage(t *testing.T) {
	e := &OrphanError{ID: "m1", Parent: "missing"}
	msg := e.Error()
	if !strings.Contains(msg, "m1") || !strings.Contains(msg, "missing") {
		t.Fatalf("OrphanError.Error() = %q, missing expected fields", msg)
	}
}
