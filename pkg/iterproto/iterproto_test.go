package iterproto_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/iterproto"
	"github.com/gitrdm/goflex/pkg/term"
)

func TestDrainRange(t *testing.T) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)
	ev := eval.New(reg, nil, nil)

	src := h.NewIterator(term.IteratorSpec{Variant: term.IterRange, Start: 5, Count: 3})
	values, deps := iterproto.Drain(ev, h, src)

	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for i, want := range []int64{5, 6, 7} {
		if h.Get(values[i]).Int64() != want {
			t.Fatalf("expected values[%d] = %d, got %d", i, want, h.Get(values[i]).Int64())
		}
	}
	if deps != term.Null {
		t.Fatalf("expected no dependencies draining a pure Range, got %v", h.Get(deps))
	}
}

func TestNextOverListThenExhausts(t *testing.T) {
	h := term.NewHeap()
	reg := eval.NewRegistry()
	builtins.Install(reg)
	ev := eval.New(reg, nil, nil)

	src := h.NewList([]term.Handle{h.NewInt(1), h.NewInt(2)})
	tok := &iterproto.Token{}

	v1, tok, _ := iterproto.Next(ev, h, src, tok)
	if h.Get(v1).Int64() != 1 {
		t.Fatalf("expected first value 1, got %v", h.Get(v1))
	}
	v2, tok, _ := iterproto.Next(ev, h, src, tok)
	if h.Get(v2).Int64() != 2 {
		t.Fatalf("expected second value 2, got %v", h.Get(v2))
	}
	v3, _, _ := iterproto.Next(ev, h, src, tok)
	if v3 != term.Null {
		t.Fatalf("expected exhaustion after 2 elements, got %v", h.Get(v3))
	}
}
