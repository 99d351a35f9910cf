package builtins_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/term"
)

func TestGetAcrossContainerKinds(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	list := h.NewList([]term.Handle{h.NewInt(10), h.NewInt(20)})
	if result, _ := apply(h, ev, reg, "Get", list, h.NewInt(1)); h.Get(result).Int64() != 20 {
		t.Fatalf("expected Get(list, 1) = 20, got %v", h.Get(result))
	}

	keys := h.NewList([]term.Handle{h.NewSymbol(1)})
	values := h.NewList([]term.Handle{h.NewString("v")})
	rec := h.NewRecord(keys, values)
	if result, _ := apply(h, ev, reg, "Get", rec, h.NewSymbol(1)); string(h.Get(result).Bytes()) != "v" {
		t.Fatalf("expected Get(record, key) = %q, got %v", "v", h.Get(result))
	}

	m := h.Get(h.NewHashmap()).Set(h, h.NewString("k"), h.NewInt(5))
	if result, _ := apply(h, ev, reg, "Get", m, h.NewString("k")); h.Get(result).Int64() != 5 {
		t.Fatalf("expected Get(hashmap, key) = 5, got %v", h.Get(result))
	}
}

func TestGetOutOfBoundsSignalsInvalidAccessor(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	list := h.NewList([]term.Handle{h.NewInt(1)})
	result, _ := apply(h, ev, reg, "Get", list, h.NewInt(5))
	rt := h.Get(result)
	if rt.Kind() != term.Signal {
		t.Fatalf("expected an out-of-bounds Get to signal, got %v", rt.Kind())
	}
	if h.Get(rt.SignalConditions()[0]).Condition().Kind != term.CondInvalidAccessor {
		t.Fatal("expected an InvalidAccessor condition")
	}
}

func TestGetDefaultFallback(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Get", h.NewInt(1), h.NewInt(0))
	if h.Get(result).Kind() != term.Signal {
		t.Fatalf("expected Get over a non-container to fall through to Default as a Signal, got %v", h.Get(result).Kind())
	}
}

func TestHasAcrossContainerKinds(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	keys := h.NewList([]term.Handle{h.NewSymbol(1)})
	values := h.NewList([]term.Handle{h.NewInt(1)})
	rec := h.NewRecord(keys, values)
	if result, _ := apply(h, ev, reg, "Has", rec, h.NewSymbol(1)); !h.Get(result).Bool() {
		t.Fatal("expected Has(record, present key) = true")
	}
	if result, _ := apply(h, ev, reg, "Has", rec, h.NewSymbol(2)); h.Get(result).Bool() {
		t.Fatal("expected Has(record, absent key) = false")
	}

	s := h.Get(h.NewHashset()).Add(h, h.NewInt(1))
	if result, _ := apply(h, ev, reg, "Has", s, h.NewInt(1)); !h.Get(result).Bool() {
		t.Fatal("expected Has(hashset, present element) = true")
	}
}

func TestHasDefaultFallback(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Has", h.NewInt(1), h.NewInt(0))
	if h.Get(result).Kind() != term.Signal {
		t.Fatalf("expected Has over a non-container to fall through to Default as a Signal, got %v", h.Get(result).Kind())
	}
}

func TestKeysAndValues(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	keys := h.NewList([]term.Handle{h.NewSymbol(1), h.NewSymbol(2)})
	values := h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2)})
	rec := h.NewRecord(keys, values)

	if result, _ := apply(h, ev, reg, "Keys", rec); result != keys {
		t.Fatal("expected Keys(record) to return the record's key List handle")
	}
	if result, _ := apply(h, ev, reg, "Values", rec); result != values {
		t.Fatal("expected Values(record) to return the record's value List handle")
	}
}

func TestLengthAcrossKinds(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	cases := []struct {
		name string
		v    term.Handle
		want int64
	}{
		{"List", h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2), h.NewInt(3)}), 3},
		{"String", h.NewString("abcd"), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, _ := apply(h, ev, reg, "Length", c.v)
			if h.Get(result).Int64() != c.want {
				t.Fatalf("expected Length = %d, got %d", c.want, h.Get(result).Int64())
			}
		})
	}
}

func TestSetOnHashmapAndListAreNonMutating(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	m := h.NewHashmap()
	updated, _ := apply(h, ev, reg, "Set", m, h.NewString("k"), h.NewInt(1))
	if h.Get(updated).HashmapLen() != 1 {
		t.Fatalf("expected Set to add an entry, got length %d", h.Get(updated).HashmapLen())
	}
	if h.Get(m).HashmapLen() != 0 {
		t.Fatal("expected the original Hashmap to remain unmutated")
	}

	list := h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2)})
	updatedList, _ := apply(h, ev, reg, "Set", list, h.NewInt(0), h.NewInt(99))
	if h.Get(h.Get(updatedList).ListItems()[0]).Int64() != 99 {
		t.Fatal("expected Set(list, 0, 99) to update index 0")
	}
	if h.Get(h.Get(list).ListItems()[0]).Int64() != 1 {
		t.Fatal("expected the original List to remain unmutated")
	}
}

func TestPushPushFrontCarCdrCons(t *testing.T) {
	h, ev, reg := newTestEvaluator()

	list := h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2)})

	pushed, _ := apply(h, ev, reg, "Push", list, h.NewInt(3))
	items := h.Get(pushed).ListItems()
	if len(items) != 3 || h.Get(items[2]).Int64() != 3 {
		t.Fatalf("expected Push to append at the end, got %v", items)
	}

	pushedFront, _ := apply(h, ev, reg, "PushFront", list, h.NewInt(0))
	frontItems := h.Get(pushedFront).ListItems()
	if len(frontItems) != 3 || h.Get(frontItems[0]).Int64() != 0 {
		t.Fatalf("expected PushFront to prepend, got %v", frontItems)
	}

	car, _ := apply(h, ev, reg, "Car", list)
	if h.Get(car).Int64() != 1 {
		t.Fatalf("expected Car(list) = 1, got %v", h.Get(car))
	}

	cdr, _ := apply(h, ev, reg, "Cdr", list)
	if len(h.Get(cdr).ListItems()) != 1 {
		t.Fatalf("expected Cdr(list) to drop the head, got %v", h.Get(cdr).ListItems())
	}

	cons, _ := apply(h, ev, reg, "Cons", h.NewInt(0), list)
	consItems := h.Get(cons).ListItems()
	if len(consItems) != 3 || h.Get(consItems[0]).Int64() != 0 {
		t.Fatalf("expected Cons to prepend a single element, got %v", consItems)
	}
}

func TestCarCdrOnEmptyListSignalInvalidAccessor(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	empty := h.NewList(nil)

	carResult, _ := apply(h, ev, reg, "Car", empty)
	if h.Get(carResult).Kind() != term.Signal {
		t.Fatalf("expected Car(empty list) to signal, got %v", h.Get(carResult).Kind())
	}
	cdrResult, _ := apply(h, ev, reg, "Cdr", empty)
	if h.Get(cdrResult).Kind() != term.Signal {
		t.Fatalf("expected Cdr(empty list) to signal, got %v", h.Get(cdrResult).Kind())
	}
}

func TestConsDefaultFallbackOnNonListTail(t *testing.T) {
	h, ev, reg := newTestEvaluator()
	result, _ := apply(h, ev, reg, "Cons", h.NewInt(1), h.NewInt(2))
	if h.Get(result).Kind() != term.Signal {
		t.Fatalf("expected Cons with a non-List tail to fall through to Default as a Signal, got %v", h.Get(result).Kind())
	}
}
