package evalstate_test

import (
	"testing"

	"github.com/gitrdm/goflex/pkg/evalstate"
	"github.com/gitrdm/goflex/pkg/term"
)

func TestResolveReturnsSeededValue(t *testing.T) {
	h := term.NewHeap()
	store := evalstate.New()

	effectType := h.NewSymbol(1)
	effectPayload := h.NewString("user:42")
	store.Seed(h, effectType, effectPayload, h.NewString("Ada Lovelace"))

	value, pending := store.Resolve(h, effectType, effectPayload)
	if pending != term.Null {
		t.Fatalf("expected no pending sentinel for a seeded answer, got %v", pending)
	}
	if string(h.Get(value).Bytes()) != "Ada Lovelace" {
		t.Fatalf("expected seeded value, got %v", h.Get(value))
	}
}

func TestResolveReportsPendingOnMiss(t *testing.T) {
	h := term.NewHeap()
	store := evalstate.New()

	effectType := h.NewSymbol(1)
	effectPayload := h.NewString("user:99")

	value, pending := store.Resolve(h, effectType, effectPayload)
	if value != term.Null {
		t.Fatalf("expected no value on a miss, got %v", h.Get(value))
	}
	if pending == term.Null {
		t.Fatal("expected a pending sentinel on a miss")
	}
}

func TestSeedDistinguishesByPayload(t *testing.T) {
	h := term.NewHeap()
	store := evalstate.New()
	effectType := h.NewSymbol(7)

	store.Seed(h, effectType, h.NewInt(1), h.NewString("one"))
	store.Seed(h, effectType, h.NewInt(2), h.NewString("two"))

	v1, _ := store.Resolve(h, effectType, h.NewInt(1))
	v2, _ := store.Resolve(h, effectType, h.NewInt(2))

	if string(h.Get(v1).Bytes()) != "one" {
		t.Fatalf("expected payload 1 to resolve to 'one', got %v", h.Get(v1))
	}
	if string(h.Get(v2).Bytes()) != "two" {
		t.Fatalf("expected payload 2 to resolve to 'two', got %v", h.Get(v2))
	}
}
