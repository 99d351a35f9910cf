// Package signal implements the small algebra of operations over Signal
// terms: union, partition by condition kind, and the single-condition and
// emptiness helpers built-ins use to thread diagnostics through an
// evaluation without aborting it.
//
// The accumulate-and-merge shape follows gitrdm-gokando's
// constraint_types.go/constraint_store.go, adapted from a mutable store to
// the term package's immutable Signal term.
package signal

import (
	"github.com/gitrdm/goflex/internal/depset"
	"github.com/gitrdm/goflex/pkg/term"
)

// Of wraps a single condition handle in a one-element Signal.
func Of(h *term.Heap, condition term.Handle) term.Handle {
	return h.NewSignal([]term.Handle{condition})
}

// Union merges every condition carried by the given Signal handles into one
// Signal, deduplicating structurally-equal conditions. Union is commutative,
// associative, and idempotent. Null handles and non-Signal handles are
// ignored. When no condition is left, Union returns term.Null, the empty
// dependency set.
func Union(h *term.Heap, signals ...term.Handle) term.Handle {
	var all []term.Handle
	for _, s := range signals {
		if s == term.Null {
			continue
		}
		t := h.Get(s)
		if t == nil || t.Kind() != term.Signal {
			continue
		}
		all = append(all, t.SignalConditions()...)
	}
	out := dedupe(h, all)
	if len(out) == 0 {
		return term.Null
	}
	return h.NewSignal(out)
}

// dedupe drops duplicate conditions from a union. Most duplicates in
// practice are the exact same handle surfacing twice (the same Effect
// condition read from two branches of an expression); seenHandles gives
// that common case an O(1) rejection via depset's bitmap before falling
// back to a full structural comparison for handles that differ but may
// still denote an equal condition.
func dedupe(h *term.Heap, conditions []term.Handle) []term.Handle {
	out := make([]term.Handle, 0, len(conditions))
	seenHandles := depset.Empty()
	for _, c := range conditions {
		if seenHandles.Contains(uint32(c)) {
			continue
		}
		seenHandles = seenHandles.With(uint32(c))
		dup := false
		for _, seen := range out {
			if term.Equal(h, c, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// IsEmpty reports whether handle is a Signal with zero conditions, or not a
// Signal at all.
func IsEmpty(h *term.Heap, handle term.Handle) bool {
	if handle == term.Null {
		return true
	}
	t := h.Get(handle)
	if t == nil || t.Kind() != term.Signal {
		return true
	}
	return len(t.SignalConditions()) == 0
}

// PartitionByKind splits a Signal's conditions into those matching kind and
// the remainder, each rewrapped as a Signal. Used by built-ins that want to
// handle, say, every Custom condition while passing the rest through
// untouched.
func PartitionByKind(h *term.Heap, handle term.Handle, kind term.ConditionKind) (matched, rest term.Handle) {
	t := h.Get(handle)
	if t == nil || t.Kind() != term.Signal {
		empty := h.NewSignal(nil)
		return empty, empty
	}
	var m, r []term.Handle
	for _, c := range t.SignalConditions() {
		cd := h.Get(c)
		if cd != nil && cd.Kind() == term.Condition && cd.Condition().Kind == kind {
			m = append(m, c)
		} else {
			r = append(r, c)
		}
	}
	return h.NewSignal(m), h.NewSignal(r)
}
