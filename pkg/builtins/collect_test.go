package builtins_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/term"
)

func newTestEvaluator() (*term.Heap, *eval.Evaluator, *eval.Registry) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)
	return h, eval.New(reg, nil, nil), reg
}

func apply(h *term.Heap, ev *eval.Evaluator, reg *eval.Registry, name string, args ...term.Handle) (term.Handle, term.Handle) {
	id, _ := reg.ID(name)
	expr := h.NewApplication(h.NewBuiltin(id), h.NewList(args))
	return ev.Eval(h, nil, expr)
}

// TestScenarioCollectListOfSignals evaluates:
// CollectList(Map(Range(3,3), λx. Raise(x))) -> Signal{Error 3, Error 4, Error 5}.
func TestScenarioCollectListOfSignals(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	rangeIter := h.NewIterator(term.IteratorSpec{Variant: term.IterRange, Start: 3, Count: 3})
	raiseID, _ := reg.ID("Raise")
	fn := h.NewLambda(1, false, h.NewApplication(h.NewBuiltin(raiseID), h.NewList([]term.Handle{h.NewVariable(0)})))

	mapped, _ := apply(h, ev, reg, "Map", rangeIter, fn)
	result, deps := apply(h, ev, reg, "CollectList", mapped)

	rt := h.Get(result)
	if rt.Kind() != term.Signal {
		t.Fatalf("expected a Signal result, got %v", rt.Kind())
	}
	conditions := rt.SignalConditions()
	if len(conditions) != 3 {
		t.Fatalf("expected 3 unioned Error conditions, got %d", len(conditions))
	}
	seen := map[int64]bool{}
	for _, c := range conditions {
		cd := h.Get(c).Condition()
		if cd.Kind != term.CondError {
			t.Fatalf("expected CondError, got %v", cd.Kind)
		}
		seen[h.Get(cd.Payload).Int64()] = true
	}
	for _, want := range []int64{3, 4, 5} {
		if !seen[want] {
			t.Fatalf("expected an Error payload of %d among the conditions", want)
		}
	}
	if deps != term.Null {
		t.Fatalf("expected empty dependency set, got %v", h.Get(deps))
	}
}

// TestScenarioCollectHashmapZip evaluates:
// CollectHashmap(Zip(["foo","bar","baz"], Range(3,3))) -> a 3-entry Hashmap
// with foo->3, bar->4, baz->5.
func TestScenarioCollectHashmapZip(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	names := h.NewList([]term.Handle{h.NewString("foo"), h.NewString("bar"), h.NewString("baz")})
	rangeIter := h.NewIterator(term.IteratorSpec{Variant: term.IterRange, Start: 3, Count: 3})

	zipped, _ := apply(h, ev, reg, "Zip", names, rangeIter)
	result, _ := apply(h, ev, reg, "CollectHashmap", zipped)

	rt := h.Get(result)
	if rt.Kind() != term.Hashmap {
		t.Fatalf("expected a Hashmap, got %v", rt.Kind())
	}
	if rt.HashmapLen() != 3 {
		t.Fatalf("expected 3 entries, got %d", rt.HashmapLen())
	}
	for key, want := range map[string]int64{"foo": 3, "bar": 4, "baz": 5} {
		v, ok := rt.HashmapGet(h, h.NewString(key))
		if !ok {
			t.Fatalf("expected key %q to be present", key)
		}
		if h.Get(v).Int64() != want {
			t.Fatalf("expected %s -> %d, got %d", key, want, h.Get(v).Int64())
		}
	}
}

// TestResolveLoaderResultsComposite is a composite analog of a loader-join
// scenario, built from existing built-ins rather than a dedicated
// registered loader: a missing hashmap key raises and the raise propagates
// as a Signal once collected, same as a real batch-loader join would.
func TestResolveLoaderResultsComposite(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	loaded := h.NewHashmap()
	loaded = h.Get(loaded).Set(h, h.NewString("foo"), h.NewString("v:foo"))
	loaded = h.Get(loaded).Set(h, h.NewString("bar"), h.NewString("v:bar"))

	hasID, _ := reg.ID("Has")
	getID, _ := reg.ID("Get")
	raiseID, _ := reg.ID("Raise")
	ifID, _ := reg.ID("If")

	v0 := h.NewVariable(0)
	cond := h.NewApplication(h.NewBuiltin(hasID), h.NewList([]term.Handle{loaded, v0}))
	thenBranch := h.NewApplication(h.NewBuiltin(getID), h.NewList([]term.Handle{loaded, v0}))
	elseBranch := h.NewApplication(h.NewBuiltin(raiseID), h.NewList([]term.Handle{v0}))
	body := h.NewApplication(h.NewBuiltin(ifID), h.NewList([]term.Handle{cond, thenBranch, elseBranch}))
	fn := h.NewLambda(1, false, body)

	keys := h.NewList([]term.Handle{h.NewString("foo"), h.NewString("bar"), h.NewString("baz")})
	mapped, _ := apply(h, ev, reg, "Map", keys, fn)
	result, _ := apply(h, ev, reg, "CollectList", mapped)

	rt := h.Get(result)
	if rt.Kind() != term.Signal {
		t.Fatalf("expected a Signal for the missing key, got %v", rt.Kind())
	}
	conditions := rt.SignalConditions()
	if len(conditions) != 1 {
		t.Fatalf("expected exactly 1 Error condition for the missing key, got %d", len(conditions))
	}
	payload := h.Get(conditions[0]).Condition().Payload
	if string(h.Get(payload).Bytes()) != "baz" {
		t.Fatalf("expected the missing key 'baz' as the error payload, got %q", string(h.Get(payload).Bytes()))
	}
}
