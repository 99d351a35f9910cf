package signal

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/term"
)

func TestUnionIsCommutativeAndIdempotent(t *testing.T) {
	h := term.NewHeap()
	a := Of(h, h.NewErrorCondition(h.NewString("a")))
	b := Of(h, h.NewErrorCondition(h.NewString("b")))

	ab := Union(h, a, b)
	ba := Union(h, b, a)
	if !term.Equal(h, ab, ba) {
		t.Fatal("Union should be commutative")
	}

	abab := Union(h, ab, ab)
	if !term.Equal(h, ab, abab) {
		t.Fatal("Union should be idempotent")
	}
}

func TestUnionIgnoresNullAndNonSignal(t *testing.T) {
	h := term.NewHeap()
	a := Of(h, h.NewErrorCondition(h.NewString("a")))
	plain := h.NewInt(7)

	result := Union(h, term.Null, a, plain)
	conditions := h.Get(result).SignalConditions()
	if len(conditions) != 1 {
		t.Fatalf("expected 1 condition surviving union, got %d", len(conditions))
	}
}

func TestIsEmpty(t *testing.T) {
	h := term.NewHeap()
	if !IsEmpty(h, term.Null) {
		t.Fatal("Null should be empty")
	}
	if !IsEmpty(h, h.NewSignal(nil)) {
		t.Fatal("a Signal with no conditions should be empty")
	}
	nonEmpty := Of(h, h.NewErrorCondition(h.NewString("x")))
	if IsEmpty(h, nonEmpty) {
		t.Fatal("a Signal carrying a condition should not be empty")
	}
}

func TestPartitionByKind(t *testing.T) {
	h := term.NewHeap()
	errCond := h.NewErrorCondition(h.NewString("boom"))
	pendingCond := h.NewPendingCondition()
	sig := h.NewSignal([]term.Handle{errCond, pendingCond})

	matched, rest := PartitionByKind(h, sig, term.CondError)
	if len(h.Get(matched).SignalConditions()) != 1 {
		t.Fatalf("expected 1 matching condition, got %d", len(h.Get(matched).SignalConditions()))
	}
	if len(h.Get(rest).SignalConditions()) != 1 {
		t.Fatalf("expected 1 remaining condition, got %d", len(h.Get(rest).SignalConditions()))
	}
}
