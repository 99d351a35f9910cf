package builtins_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/term"
)

func TestEqAndEqual(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	a := h.NewList([]term.Handle{h.NewInt(1)})
	b := h.NewList([]term.Handle{h.NewInt(1)})

	if result, _ := apply(h, ev, reg, "Eq", a, a); !h.Get(result).Bool() {
		t.Fatal("expected Eq to hold for identical handles")
	}
	if result, _ := apply(h, ev, reg, "Eq", a, b); h.Get(result).Bool() {
		t.Fatal("expected Eq to be false for distinct handles with equal structure")
	}
	if result, _ := apply(h, ev, reg, "Equal", a, b); !h.Get(result).Bool() {
		t.Fatal("expected Equal to hold for structurally equal but distinct handles")
	}
}

func TestOrdering(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	cases := []struct {
		op   string
		a, b term.Handle
		want bool
	}{
		{"Gt", h.NewInt(5), h.NewInt(3), true},
		{"Gte", h.NewInt(3), h.NewInt(3), true},
		{"Lt", h.NewInt(2), h.NewInt(3), true},
		{"Lte", h.NewInt(3), h.NewInt(3), true},
		{"Lt", h.NewString("a"), h.NewString("b"), true},
		{"Gt", h.NewString("b"), h.NewString("a"), true},
	}
	for _, c := range cases {
		t.Run(c.op, func(t *testing.T) {
			result, _ := apply(h, ev, reg, c.op, c.a, c.b)
			if h.Get(result).Bool() != c.want {
				t.Fatalf("expected %s = %v", c.op, c.want)
			}
		})
	}
}

func TestOrderingDefaultFallback(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Gt", h.NewBoolean(true), h.NewBoolean(false))
	if h.Get(result).Kind() != term.Signal {
		t.Fatalf("expected Gt over non-numeric non-string arguments to fall through to Default as a Signal, got %v", h.Get(result).Kind())
	}
}

func TestNot(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	if result, _ := apply(h, ev, reg, "Not", h.NewBoolean(false)); !h.Get(result).Bool() {
		t.Fatal("expected Not(false) = true")
	}
	if result, _ := apply(h, ev, reg, "Not", h.NewNil()); !h.Get(result).Bool() {
		t.Fatal("expected Not(Nil) = true, Nil is falsy")
	}
}

// TestAndOrShortCircuit checks that a deciding first argument keeps And/Or
// from forcing their lazy second argument at all.
func TestAndOrShortCircuit(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	boom := h.NewEffect(h.NewErrorCondition(h.NewInt(0)))

	andID := mustID(t, reg, "And")
	andExpr := h.NewApplication(h.NewBuiltin(andID), h.NewList([]term.Handle{h.NewBoolean(false), boom}))
	result, deps := ev.Eval(h, nil, andExpr)
	if h.Get(result).Kind() != term.Boolean || h.Get(result).Bool() {
		t.Fatalf("expected And(false, ...) to short-circuit to false, got %v", h.Get(result))
	}
	if deps != term.Null {
		t.Fatalf("expected the lazy second argument not to be forced, got dependencies %v", h.Get(deps))
	}

	orID := mustID(t, reg, "Or")
	orExpr := h.NewApplication(h.NewBuiltin(orID), h.NewList([]term.Handle{h.NewBoolean(true), boom}))
	orResult, orDeps := ev.Eval(h, nil, orExpr)
	if h.Get(orResult).Kind() != term.Boolean || !h.Get(orResult).Bool() {
		t.Fatalf("expected Or(true, ...) to short-circuit to true, got %v", h.Get(orResult))
	}
	if orDeps != term.Null {
		t.Fatalf("expected the lazy second argument not to be forced, got dependencies %v", h.Get(orDeps))
	}
}

func TestIfErrorPassesThroughNonSignal(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	identityID := mustID(t, reg, "Identity")
	result, _ := apply(h, ev, reg, "IfError", h.NewInt(9), h.NewBuiltin(identityID))
	if h.Get(result).Int64() != 9 {
		t.Fatalf("expected IfError to pass a non-Signal value through unchanged, got %v", h.Get(result))
	}
}

func TestIfPendingAppliesFallbackWhenAllPending(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	pending := h.NewSignal([]term.Handle{h.NewPendingCondition()})
	fallback := h.NewLambda(0, false, h.NewInt(42))
	result, _ := apply(h, ev, reg, "IfPending", pending, fallback)
	if h.Get(result).Int64() != 42 {
		t.Fatalf("expected IfPending fallback to run when every condition is Pending, got %v", h.Get(result))
	}
}

func TestRaiseWrapsPayloadInErrorSignal(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Raise", h.NewString("bad"))
	rt := h.Get(result)
	if rt.Kind() != term.Signal {
		t.Fatalf("expected Raise to produce a Signal, got %v", rt.Kind())
	}
	cond := h.Get(rt.SignalConditions()[0]).Condition()
	if cond.Kind != term.CondError || string(h.Get(cond.Payload).Bytes()) != "bad" {
		t.Fatalf("expected an Error condition wrapping the payload, got %v", cond)
	}
}

func TestSequenceReturnsLastElement(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Sequence", h.NewInt(1), h.NewInt(2), h.NewInt(3))
	if h.Get(result).Int64() != 3 {
		t.Fatalf("expected Sequence to return the last element, got %v", h.Get(result))
	}
}

func TestIdentityReturnsInputUnchanged(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	v := h.NewInt(7)
	result, _ := apply(h, ev, reg, "Identity", v)
	if result != v {
		t.Fatalf("expected Identity to return the same handle, got %v", result)
	}
}

func TestHashIsConsistentWithEqual(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	a := h.NewList([]term.Handle{h.NewInt(1)})
	b := h.NewList([]term.Handle{h.NewInt(1)})
	ha, _ := apply(h, ev, reg, "Hash", a)
	hb, _ := apply(h, ev, reg, "Hash", b)
	if h.Get(ha).Int64() != h.Get(hb).Int64() {
		t.Fatalf("expected structurally equal terms to hash equal, got %d vs %d", h.Get(ha).Int64(), h.Get(hb).Int64())
	}
}

func TestEffectBuiltinWrapsCondition(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	cond := h.NewErrorCondition(h.NewString("x"))
	result, _ := apply(h, ev, reg, "Effect", cond)
	if h.Get(result).Kind() != term.Effect {
		t.Fatalf("expected Effect to wrap a Condition into an Effect term, got %v", h.Get(result).Kind())
	}
}

func TestEffectDefaultFallbackOnNonCondition(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Effect", h.NewInt(1))
	if h.Get(result).Kind() != term.Signal {
		t.Fatalf("expected Effect over a non-Condition argument to fall through to Default as a Signal, got %v", h.Get(result).Kind())
	}
}
