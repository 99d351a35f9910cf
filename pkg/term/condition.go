package term

import "github.com/gitrdm/goflex/pkg/hasher"

// NewErrorCondition allocates a Condition carrying an arbitrary error
// payload term.
func (h *Heap) NewErrorCondition(payload Handle) Handle {
	d := ConditionDetail{Kind: CondError, Payload: payload}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondError)).WriteHash32(h.hashOf(payload))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewPendingCondition allocates the singleton-shaped Pending condition.
func (h *Heap) NewPendingCondition() Handle {
	d := ConditionDetail{Kind: CondPending}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondPending))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewCustomCondition allocates a Custom condition describing an unresolved
// Effect awaiting a host response, optionally correlated by a token.
func (h *Heap) NewCustomCondition(effectType, effectPayload, token Handle) Handle {
	d := ConditionDetail{Kind: CondCustom, EffectType: effectType, EffectPayload: effectPayload, Token: token}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondCustom)).
		WriteHash32(h.hashOf(effectType)).WriteHash32(h.hashOf(effectPayload)).WriteHash32(h.hashOf(token))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewInvalidFunctionArgsCondition allocates the condition a built-in's
// Default guard falls back to when no Impl's Guard matches the call.
func (h *Heap) NewInvalidFunctionArgsCondition(fn, args Handle) Handle {
	d := ConditionDetail{Kind: CondInvalidFunctionArgs, Fn: fn, Args: args}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondInvalidFunctionArgs)).
		WriteHash32(h.hashOf(fn)).WriteHash32(h.hashOf(args))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewInvalidAccessorCondition allocates the condition produced when a
// container accessor is applied to a key/index it does not hold.
func (h *Heap) NewInvalidAccessorCondition(target, key Handle) Handle {
	d := ConditionDetail{Kind: CondInvalidAccessor, Target: target, Key: key}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondInvalidAccessor)).
		WriteHash32(h.hashOf(target)).WriteHash32(h.hashOf(key))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewTypeErrorCondition allocates the condition produced when a built-in's
// guard accepted an argument by kind but a narrower runtime check failed.
func (h *Heap) NewTypeErrorCondition(expected string, actual Handle) Handle {
	d := ConditionDetail{Kind: CondTypeError, Expected: expected, Actual: actual}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondTypeError)).
		WriteBytes([]byte(expected)).WriteHash32(h.hashOf(actual))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewInvalidPointerCondition allocates the condition a dangling handle
// redirects to once its original slot has been reclaimed out from under it.
func (h *Heap) NewInvalidPointerCondition() Handle {
	d := ConditionDetail{Kind: CondInvalidPointer}
	hh := hasher.New().WriteTag(tagCondition).WriteUint64(uint64(CondInvalidPointer))
	return h.alloc(&Term{kind: Condition, hash: hh.Sum32(), payload: d})
}

// NewSignal allocates a Signal term from a set of Condition handles. The
// hash is order-independent (XOR-combined) so that signals accumulated in
// different orders but holding the same conditions compare and hash equal.
func (h *Heap) NewSignal(conditions []Handle) Handle {
	cp := make([]Handle, len(conditions))
	copy(cp, conditions)
	var acc uint64
	for _, c := range cp {
		acc ^= hasher.New().WriteHash32(h.hashOf(c)).Sum64()
	}
	hh := hasher.New().WriteTag(tagSignal).WriteUint64(acc)
	return h.alloc(&Term{kind: Signal, hash: hh.Sum32(), payload: signalPayload{conditions: cp}})
}

// NewIterator allocates an Iterator term from a fully populated spec.
func (h *Heap) NewIterator(spec IteratorSpec) Handle {
	hh := hasher.New().WriteTag(tagIterator).WriteUint64(uint64(spec.Variant)).
		WriteHash32(h.hashOf(spec.Src)).WriteHash32(h.hashOf(spec.Src2)).WriteHash32(h.hashOf(spec.Fn)).
		WriteInt64(spec.N).WriteInt64(spec.Start).WriteInt64(spec.Count)
	return h.alloc(&Term{kind: Iterator, hash: hh.Sum32(), payload: spec})
}
