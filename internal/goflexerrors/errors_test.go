package goflexerrors

import (
	"errors"
	"testing"
)

func TestWrappedErrorsMatchTheirSentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"NotFoundf", NotFoundf("program %q", "main"), ErrNotFound},
		{"InvalidProgramf", InvalidProgramf("line %d", 3), ErrInvalidProgram},
		{"BadArgumentf", BadArgumentf("flag %q", "--bogus"), ErrBadArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, c.sentinel) {
				t.Fatalf("expected %v to wrap %v", c.err, c.sentinel)
			}
		})
	}
}

func TestWrappedErrorsCarryDetail(t *testing.T) {
	err := NotFoundf("builtin %q", "Frobnicate")
	if err.Error() == ErrNotFound.Error() {
		t.Fatal("expected the wrapped error to include the formatted detail")
	}
}
