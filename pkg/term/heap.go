package term

// Heap is the bump-allocated arena backing every Term. Slot 0 is reserved
// and always nil; it is never dereferenced, only compared against as the
// Null sentinel.
//
// Go's slice already gives append-only bump allocation, so Shrink and
// Redirect are implemented at slot granularity rather than raw byte
// offsets. Two invariants still hold: a slot may only be shrunk if it is
// the most recent allocation, and redirecting a non-youngest slot leaves
// behind a transparent forwarding cell (see DESIGN.md).
type Heap struct {
	slots      []*Term
	invalidPtr Handle
	unit       Handle
}

// NewHeap returns an empty heap with only the reserved Null slot.
func NewHeap() *Heap {
	return &Heap{slots: make([]*Term, 1)}
}

func (h *Heap) alloc(t *Term) Handle {
	h.slots = append(h.slots, t)
	return Handle(len(h.slots) - 1)
}

// Get dereferences a handle, following any redirect chain transparently.
// Get(Null) returns nil; callers compare against Null before dereferencing
// when absence is a valid state (Tree branches, iterator termination).
func (h *Heap) Get(handle Handle) *Term {
	if handle == Null {
		return nil
	}
	t := h.slots[handle]
	for t != nil && t.kind == pointerKind {
		t = h.slots[t.pointerTarget()]
	}
	return t
}

func (h *Heap) hashOf(handle Handle) uint32 {
	if handle == Null {
		return 0
	}
	return h.Get(handle).hash
}

// Size returns the number of slots in the arena, including the reserved
// Null slot, i.e. the current bump pointer.
func (h *Heap) Size() int { return len(h.slots) }

// Shrink frees handle's slot, legal only when handle is the arena's most
// recent allocation. It reports whether the shrink was performed.
func (h *Heap) Shrink(handle Handle) bool {
	if handle == Null {
		return false
	}
	if int(handle) != len(h.slots)-1 {
		return false
	}
	h.slots = h.slots[:handle]
	return true
}

// Redirect overwrites handle's slot with a transparent forwarding cell
// pointing at target. Used to neutralize stale references after a
// non-youngest drop.
func (h *Heap) Redirect(handle, target Handle) {
	h.slots[handle] = &Term{kind: pointerKind, hash: h.hashOf(target), payload: pointerPayload{target: target}}
}

// Drop frees handle if it is the arena's youngest allocation; otherwise it
// redirects handle to a shared InvalidPointer condition, so that any
// remaining stale reference surfaces as a well-formed Condition rather than
// reading garbage.
func (h *Heap) Drop(handle Handle) {
	if handle == Null {
		return
	}
	if h.Shrink(handle) {
		return
	}
	h.Redirect(handle, h.invalidPointerHandle())
}

func (h *Heap) invalidPointerHandle() Handle {
	if h.invalidPtr == Null {
		h.invalidPtr = h.NewInvalidPointerCondition()
	}
	return h.invalidPtr
}

// Reset truncates the arena back to just the reserved Null slot: the
// baseline resource-management strategy between top-level evaluations.
func (h *Heap) Reset() {
	h.slots = h.slots[:1]
	h.invalidPtr = Null
	h.unit = Null
}
