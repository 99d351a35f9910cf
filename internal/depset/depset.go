// Package depset implements a persistent set of term handles. pkg/signal
// uses it in Union's dedupe step as a same-handle membership check; the
// dependency set threaded through evaluation is itself a Signal term, not
// a depset.Set.
//
// Handles are already small dense integers, so the set is backed by a
// Roaring bitmap (github.com/RoaringBitmap/roaring/v2, the same library
// erigon uses for its own dense integer sets) rather than a plain
// map[term.Handle]struct{}, which keeps membership checks cheap even once
// a program has allocated a large arena.
package depset

import "github.com/RoaringBitmap/roaring/v2"

// Set is a persistent (copy-on-write) collection of term handles. The zero
// value is a valid empty set.
type Set struct {
	bits *roaring.Bitmap
}

// Empty returns the empty dependency set.
func Empty() Set { return Set{bits: roaring.New()} }

// Of returns a set containing exactly the given handles.
func Of(handles ...uint32) Set {
	s := Empty()
	s.bits.AddMany(handles)
	return s
}

// With returns a new set equal to s plus handle, leaving s unmodified:
// dependency sets follow the same functional-update discipline as term
// construction.
func (s Set) With(handle uint32) Set {
	out := s.clone()
	out.bits.Add(handle)
	return out
}

// Union returns a new set containing every handle in s or other.
func (s Set) Union(other Set) Set {
	out := s.clone()
	if other.bits != nil {
		out.bits.Or(other.bits)
	}
	return out
}

// Contains reports whether handle is a member of s.
func (s Set) Contains(handle uint32) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Contains(handle)
}

// Intersects reports whether s and other share at least one handle, used
// to decide whether a mutation to other invalidates a value depending on s.
func (s Set) Intersects(other Set) bool {
	if s.bits == nil || other.bits == nil {
		return false
	}
	return s.bits.Intersects(other.bits)
}

// Len reports the number of distinct handles in s.
func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

// Slice returns s's handles in ascending order.
func (s Set) Slice() []uint32 {
	if s.bits == nil {
		return nil
	}
	return s.bits.ToArray()
}

func (s Set) clone() Set {
	if s.bits == nil {
		return Empty()
	}
	return Set{bits: s.bits.Clone()}
}
