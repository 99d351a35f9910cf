// Package evalstate implements the in-memory ExternalState a demo host
// backs its Effects with: a plain keyed map checked on resolution, the
// same shape as gitrdm-gokando's Substitution.Lookup, adapted from
// variable bindings to effect-type/payload pairs.
package evalstate

import (
	"github.com/gitrdm/goflex/pkg/hasher"
	"github.com/gitrdm/goflex/pkg/term"
)

// Store is a host-side map from (effectType, effectPayload) to the value
// an Effect resolves to. A key with no entry resolves to Pending.
type Store struct {
	answers map[uint64]term.Handle
}

// New returns an empty Store.
func New() *Store {
	return &Store{answers: make(map[uint64]term.Handle)}
}

func key(h *term.Heap, effectType, effectPayload term.Handle) uint64 {
	tt := h.Get(effectType)
	pt := h.Get(effectPayload)
	var typeHash, payloadHash uint32
	if tt != nil {
		typeHash = tt.Hash()
	}
	if pt != nil {
		payloadHash = pt.Hash()
	}
	return hasher.New().WriteHash32(typeHash).WriteHash32(payloadHash).Sum64()
}

// Seed registers value as the answer for the (effectType, effectPayload)
// pair, overwriting any prior answer.
func (s *Store) Seed(h *term.Heap, effectType, effectPayload, value term.Handle) {
	s.answers[key(h, effectType, effectPayload)] = value
}

// Resolve implements eval.ExternalState: a seeded pair returns its value
// with a Null pending; an unseeded pair reports pending via a non-Null
// sentinel handle (any handle works as the boolean-like presence check the
// evaluator performs; term.Null conventionally stands for "no pending").
func (s *Store) Resolve(h *term.Heap, effectType, effectPayload term.Handle) (term.Handle, term.Handle) {
	if v, ok := s.answers[key(h, effectType, effectPayload)]; ok {
		return v, term.Null
	}
	return term.Null, h.NewBoolean(true)
}
