package eval_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/evalstate"
	"github.com/gitrdm/goflex/pkg/term"
)

func newEvaluator(state eval.ExternalState) (*term.Heap, *eval.Evaluator, *eval.Registry) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)
	return h, eval.New(reg, state, nil), reg
}

// TestScenarioAdd evaluates Add(3, 4) -> 7.
func TestScenarioAdd(t *testing.T) {
	h, ev, reg := newEvaluator(nil)
	id, _ := reg.ID("Add")
	expr := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{h.NewInt(3), h.NewInt(4)}))

	result, deps := ev.Eval(h, nil, expr)
	if h.Get(result).Kind() != term.Int || h.Get(result).Int64() != 7 {
		t.Fatalf("expected Int 7, got %v", h.Get(result))
	}
	if deps != term.Null {
		t.Fatalf("expected empty dependency set, got %v", h.Get(deps))
	}
}

// TestScenarioIf evaluates If(true, 3, 4) -> 3.
func TestScenarioIf(t *testing.T) {
	h, ev, reg := newEvaluator(nil)
	id, _ := reg.ID("If")
	expr := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{
		h.NewBoolean(true), h.NewInt(3), h.NewInt(4),
	}))

	result, _ := ev.Eval(h, nil, expr)
	if h.Get(result).Kind() != term.Int || h.Get(result).Int64() != 3 {
		t.Fatalf("expected Int 3, got %v", h.Get(result))
	}
}

// TestScenarioIfError checks that an Effect's Custom
// condition resolves (via ExternalState) to Signal(Error("foo")); IfError
// routes the Error payloads to Identity.
func TestScenarioIfError(t *testing.T) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)

	effectType := h.NewSymbol(123)
	effectPayload := h.NewInt(3)
	cond := h.NewCustomCondition(effectType, effectPayload, term.Null)
	effect := h.NewEffect(cond)

	store := evalstate.New()
	errSignal := h.NewSignal([]term.Handle{h.NewErrorCondition(h.NewString("foo"))})
	store.Seed(h, effectType, effectPayload, errSignal)

	ev := eval.New(reg, store, nil)
	identityID, _ := reg.ID("Identity")
	ifErrorID, _ := reg.ID("IfError")
	expr := h.NewApplication(h.NewBuiltin(ifErrorID), h.NewList([]term.Handle{
		effect, h.NewBuiltin(identityID),
	}))

	result, deps := ev.Eval(h, nil, expr)
	resultTerm := h.Get(result)
	if resultTerm.Kind() != term.List || len(resultTerm.ListItems()) != 1 {
		t.Fatalf("expected a 1-element List, got %v", resultTerm)
	}
	if deps == term.Null || len(h.Get(deps).SignalConditions()) != 1 {
		t.Fatalf("expected the Custom condition to surface as a dependency, got %v", deps)
	}
}

// TestSignalAbsorption checks the Signal absorption property: if
// a strict argument position forces to Signal(S), the whole application's
// result is Signal(union of every strict signal argument).
func TestSignalAbsorption(t *testing.T) {
	h, ev, reg := newEvaluator(nil)
	id, _ := reg.ID("Add")

	badLeft := h.NewSignal([]term.Handle{h.NewErrorCondition(h.NewString("left"))})
	badRight := h.NewSignal([]term.Handle{h.NewErrorCondition(h.NewString("right"))})

	expr := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{badLeft, badRight}))
	result, _ := ev.Eval(h, nil, expr)

	resultTerm := h.Get(result)
	if resultTerm.Kind() != term.Signal {
		t.Fatalf("expected a Signal result, got %v", resultTerm.Kind())
	}
	if len(resultTerm.SignalConditions()) != 2 {
		t.Fatalf("expected both strict-argument signals to be unioned, got %d conditions", len(resultTerm.SignalConditions()))
	}
}

// TestDependencyMonotonicity checks the property that a
// composite expression's dependency set is a superset of its parts'.
func TestDependencyMonotonicity(t *testing.T) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)

	typeA, payloadA := h.NewSymbol(1), h.NewInt(1)
	typeB, payloadB := h.NewSymbol(2), h.NewInt(2)
	store := evalstate.New()
	store.Seed(h, typeA, payloadA, h.NewInt(10))
	store.Seed(h, typeB, payloadB, h.NewInt(20))
	ev := eval.New(reg, store, nil)

	effectA := h.NewEffect(h.NewCustomCondition(typeA, payloadA, term.Null))
	effectB := h.NewEffect(h.NewCustomCondition(typeB, payloadB, term.Null))

	_, depsA := ev.Eval(h, nil, effectA)
	_, depsB := ev.Eval(h, nil, effectB)

	id, _ := reg.ID("Add")
	composite := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{effectA, effectB}))
	_, compositeDeps := ev.Eval(h, nil, composite)

	for _, part := range []term.Handle{depsA, depsB} {
		for _, c := range h.Get(part).SignalConditions() {
			found := false
			for _, cc := range h.Get(compositeDeps).SignalConditions() {
				if term.Equal(h, c, cc) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("composite dependency set is missing a component condition")
			}
		}
	}
}
