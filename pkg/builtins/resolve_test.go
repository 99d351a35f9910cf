package builtins_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/term"
)

// TestResolveDeepIdempotence checks the property that resolving
// an already-resolved term a second time is a no-op.
func TestResolveDeepIdempotence(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	rangeIter := h.NewIterator(term.IteratorSpec{Variant: term.IterRange, Start: 0, Count: 3})
	listWithIter := h.NewList([]term.Handle{rangeIter, h.NewInt(99)})

	once, _ := apply(h, ev, reg, "ResolveDeep", listWithIter)
	twice, _ := apply(h, ev, reg, "ResolveDeep", once)

	if !term.Equal(h, once, twice) {
		t.Fatalf("expected resolve_deep(resolve_deep(x)) == resolve_deep(x); got %v vs %v", h.Get(once), h.Get(twice))
	}
}

// TestZipLength checks that length(zip(a,b)) = min(length(a), length(b)).
func TestZipLength(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	short := h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2)})
	long := h.NewIterator(term.IteratorSpec{Variant: term.IterRange, Start: 0, Count: 5})

	zipped, _ := apply(h, ev, reg, "Zip", short, long)
	collected, _ := apply(h, ev, reg, "CollectList", zipped)

	rt := h.Get(collected)
	if rt.Kind() != term.List {
		t.Fatalf("expected a List, got %v", rt.Kind())
	}
	if len(rt.ListItems()) != 2 {
		t.Fatalf("expected zip length 2 (min of 2 and 5), got %d", len(rt.ListItems()))
	}
}

// TestIteratorChainAssociativity checks that:
// collect_list(chain(chain(a,b),c)) == collect_list(chain(a,chain(b,c))).
func TestIteratorChainAssociativity(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	a := h.NewList([]term.Handle{h.NewInt(1)})
	b := h.NewList([]term.Handle{h.NewInt(2)})
	c := h.NewList([]term.Handle{h.NewInt(3)})

	ab, _ := apply(h, ev, reg, "Chain", a, b)
	abc1, _ := apply(h, ev, reg, "Chain", ab, c)
	left, _ := apply(h, ev, reg, "CollectList", abc1)

	bc, _ := apply(h, ev, reg, "Chain", b, c)
	abc2, _ := apply(h, ev, reg, "Chain", a, bc)
	right, _ := apply(h, ev, reg, "CollectList", abc2)

	if !term.Equal(h, left, right) {
		t.Fatalf("expected chain to be associative under collect_list; got %v vs %v", h.Get(left), h.Get(right))
	}
}
